package textops

import (
	"strings"
	"testing"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "hello   world\t\tagain", "hello world again"},
		{"trims edges", "  hello  ", "hello"},
		{"space before punctuation", "hello , world !", "hello, world!"},
		{"cjk punctuation", "你好 。世界 ！", "你好。世界！"},
		{"double asterisks", "a **bold** claim", "a *bold* claim"},
		{"empty input unchanged", "", ""},
		{"whitespace-only unchanged", "   \n  ", "   \n  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.in); got != tc.want {
				t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestApplyRules(t *testing.T) {
	out, err := ApplyRules("aaa bbb", []domain.RegexRule{
		{Pattern: "a+", Replacement: "A"},
		{Pattern: "bbb", Replacement: "B"},
	})
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if out != "A B" {
		t.Errorf("out = %q, want %q", out, "A B")
	}
}

func TestApplyRules_Ordered(t *testing.T) {
	// the second rule sees the first rule's output
	out, err := ApplyRules("cat", []domain.RegexRule{
		{Pattern: "cat", Replacement: "dog"},
		{Pattern: "dog", Replacement: "bird"},
	})
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if out != "bird" {
		t.Errorf("out = %q, want %q", out, "bird")
	}
}

func TestApplyRules_CaptureGroups(t *testing.T) {
	out, err := ApplyRules("2026-08-30", []domain.RegexRule{
		{Pattern: `(\d{4})-(\d{2})-(\d{2})`, Replacement: "$3/$2/$1"},
	})
	if err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if out != "30/08/2026" {
		t.Errorf("out = %q, want %q", out, "30/08/2026")
	}
}

func TestApplyRules_InvalidPattern(t *testing.T) {
	_, err := ApplyRules("text", []domain.RegexRule{
		{Pattern: "fine", Replacement: "ok"},
		{Pattern: "([unclosed", Replacement: "x"},
	})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !strings.Contains(err.Error(), "rule 2") {
		t.Errorf("error %q does not name the offending rule", err)
	}
}
