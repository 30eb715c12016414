package describe

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/whis-19/Kodo-Koe/internal/message"
)

// Line-leading structural patterns, keyword + following identifier. One set
// per source-language family rather than one fixed grammar: Python-like,
// C/JS-like, and Go-like declarations all count.
var (
	funcPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`),
		regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`),
		regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
		regexp.MustCompile(`^\s*(?:fn|sub|proc)\s+(\w+)`),
	}
	classPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*(?:export\s+)?(?:public\s+|final\s+|abstract\s+)*class\s+(\w+)`),
		regexp.MustCompile(`^\s*type\s+(\w+)\s+(?:struct|interface)\b`),
		regexp.MustCompile(`^\s*(?:struct|trait|impl)\s+(\w+)`),
	}
	importPattern = regexp.MustCompile(`^\s*(?:import\b|from\s+\w[\w.]*\s+import\b|#include\s|using\s+\w)`)
	// require() shows up mid-line in assignments, so it is not anchored.
	requirePattern = regexp.MustCompile(`\brequire\s*\(\s*['"]`)
)

// RuleBased is the guaranteed documentation tier. It scans the source
// line-by-line for function, class, and import constructs and composes a
// templated sentence. No external dependencies; it cannot fail.
type RuleBased struct{}

// NewRuleBased returns the rule-based extractor.
func NewRuleBased() *RuleBased { return &RuleBased{} }

// Method returns the tier tag.
func (r *RuleBased) Method() message.DocMethod { return message.DocRuleBased }

// Describe extracts structural facts and templates a description.
func (r *RuleBased) Describe(_ context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return Placeholder, nil
	}

	var funcs, classes []string
	imports := 0
	lines := 0

	inImportBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines++

		// Go-style factored import blocks count one module per line.
		if inImportBlock {
			if trimmed == ")" {
				inImportBlock = false
			} else {
				imports++
			}
			continue
		}
		if strings.HasPrefix(trimmed, "import (") {
			inImportBlock = true
			continue
		}

		if name, ok := firstMatch(funcPatterns, line); ok {
			funcs = append(funcs, name)
			continue
		}
		if name, ok := firstMatch(classPatterns, line); ok {
			classes = append(classes, name)
			continue
		}
		if importPattern.MatchString(line) || requirePattern.MatchString(line) {
			imports++
		}
	}

	if len(funcs) == 0 && len(classes) == 0 && imports == 0 {
		return fmt.Sprintf("This code contains %s with no functions, classes, or imports detected.",
			plural(lines, "non-empty line")), nil
	}

	var sb strings.Builder
	sb.WriteString("This code defines ")
	sb.WriteString(plural(len(funcs), "function"))
	if names := nameList(funcs); names != "" {
		sb.WriteString(" (" + names + ")")
	}
	sb.WriteString(" and ")
	sb.WriteString(plural(len(classes), "class"))
	if names := nameList(classes); names != "" {
		sb.WriteString(" (" + names + ")")
	}
	sb.WriteString(", importing ")
	sb.WriteString(plural(imports, "module"))
	sb.WriteString(".")
	return sb.String(), nil
}

func firstMatch(patterns []*regexp.Regexp, line string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// nameList renders up to three names for the spoken summary.
func nameList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) > 3 {
		return strings.Join(names[:3], ", ") + ", and others"
	}
	return strings.Join(names, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	suffix := "s"
	if strings.HasSuffix(noun, "ss") {
		suffix = "es"
	}
	return fmt.Sprintf("%d %s%s", n, noun, suffix)
}
