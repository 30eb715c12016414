package describe

import (
	"context"
	"strings"
	"testing"
)

func TestRuleBased_PythonFunction(t *testing.T) {
	r := NewRuleBased()
	desc, err := r.Describe(context.Background(), "def add(a, b):\n    return a + b")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if !strings.Contains(desc, "1 function") {
		t.Errorf("description %q does not mention %q", desc, "1 function")
	}
	if !strings.Contains(desc, "add") {
		t.Errorf("description %q does not name the function", desc)
	}
}

func TestRuleBased_LanguageFamilies(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "python class and imports",
			code: "import os\nfrom sys import path\n\nclass Greeter:\n    def hello(self):\n        pass",
			want: []string{"1 function", "1 class", "2 modules"},
		},
		{
			name: "javascript",
			code: "const fs = require('fs');\nexport function parse(input) {}\nasync function fetchAll() {}",
			want: []string{"2 functions", "1 module"},
		},
		{
			name: "go",
			code: "import (\n\t\"fmt\"\n\t\"os\"\n)\n\ntype Server struct{}\n\nfunc (s *Server) Run() error { return nil }\n\nfunc main() {}",
			want: []string{"2 functions", "1 class", "2 modules"},
		},
		{
			name: "c include",
			code: "#include <stdio.h>\nint main(void) { return 0; }",
			want: []string{"1 module"},
		},
	}

	r := NewRuleBased()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := r.Describe(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("Describe() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(desc, want) {
					t.Errorf("description %q does not contain %q", desc, want)
				}
			}
		})
	}
}

func TestRuleBased_NoStructure(t *testing.T) {
	r := NewRuleBased()
	desc, err := r.Describe(context.Background(), "x = 1\ny = 2")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if desc == "" {
		t.Fatal("description is empty, want non-empty for non-empty input")
	}
	if !strings.Contains(desc, "2 non-empty lines") {
		t.Errorf("description %q does not report line count", desc)
	}
}

func TestRuleBased_EmptyInput(t *testing.T) {
	r := NewRuleBased()
	desc, err := r.Describe(context.Background(), "   \n\t\n")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if desc != Placeholder {
		t.Errorf("description = %q, want placeholder", desc)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{1, "function", "1 function"},
		{2, "function", "2 functions"},
		{0, "class", "0 classes"},
		{1, "class", "1 class"},
		{3, "module", "3 modules"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, tt.noun); got != tt.want {
			t.Errorf("plural(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}
