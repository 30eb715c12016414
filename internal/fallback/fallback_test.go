package fallback

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func tier(tag string, v string, err error) Tier[string, string] {
	return Tier[string, string]{
		Tag: tag,
		Attempt: func(ctx context.Context) (string, error) {
			return v, err
		},
	}
}

func TestFirst_FirstTierWins(t *testing.T) {
	out, err := First(context.Background(), "test", []Tier[string, string]{
		tier("a", "alpha", nil),
		tier("b", "beta", nil),
	})
	if err != nil {
		t.Fatalf("First() error = %v, want nil", err)
	}
	if out.Tag != "a" {
		t.Errorf("Tag = %q, want %q", out.Tag, "a")
	}
	if out.Value != "alpha" {
		t.Errorf("Value = %q, want %q", out.Value, "alpha")
	}
	if out.Note != "" {
		t.Errorf("Note = %q, want empty", out.Note)
	}
}

func TestFirst_DegradesPastFailures(t *testing.T) {
	tests := []struct {
		name    string
		firstErr error
	}{
		{name: "unavailable", firstErr: Unavailable("not installed")},
		{name: "timeout", firstErr: context.DeadlineExceeded},
		{name: "runtime error", firstErr: errors.New("inference blew up")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := First(context.Background(), "test", []Tier[string, string]{
				tier("preferred", "", tt.firstErr),
				tier("backup", "ok", nil),
			})
			if err != nil {
				t.Fatalf("First() error = %v, want nil", err)
			}
			if out.Tag != "backup" {
				t.Errorf("Tag = %q, want %q", out.Tag, "backup")
			}
			if out.Note == "" {
				t.Error("Note is empty, want a degradation note")
			}
		})
	}
}

func TestFirst_SkipsInOrder(t *testing.T) {
	var tried []string
	mk := func(tag string, err error) Tier[string, int] {
		return Tier[string, int]{Tag: tag, Attempt: func(ctx context.Context) (int, error) {
			tried = append(tried, tag)
			return 42, err
		}}
	}

	out, err := First(context.Background(), "test", []Tier[string, int]{
		mk("one", Unavailable("x")),
		mk("two", errors.New("y")),
		mk("three", nil),
		mk("four", nil),
	})
	if err != nil {
		t.Fatalf("First() error = %v, want nil", err)
	}
	if out.Tag != "three" {
		t.Errorf("Tag = %q, want %q", out.Tag, "three")
	}
	want := []string{"one", "two", "three"}
	if fmt.Sprint(tried) != fmt.Sprint(want) {
		t.Errorf("tried = %v, want %v", tried, want)
	}
}

func TestFirst_AllTiersFail(t *testing.T) {
	_, err := First(context.Background(), "test", []Tier[string, string]{
		tier("a", "", Unavailable("a gone")),
		tier("b", "", errors.New("b broke")),
	})
	if err == nil {
		t.Fatal("First() error = nil, want exhaustion error")
	}
}

func TestIsTimeout(t *testing.T) {
	wrapped := fmt.Errorf("remote call: %w", context.DeadlineExceeded)
	if !IsTimeout(wrapped) {
		t.Error("IsTimeout(wrapped deadline) = false, want true")
	}
	if IsTimeout(errors.New("other")) {
		t.Error("IsTimeout(other) = true, want false")
	}
}
