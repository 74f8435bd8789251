package textops

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	sentenceEndFixRe = regexp.MustCompile(`\s+([。！？.!?,，;；:：])`)
	escapedParensRe  = regexp.MustCompile(`\\\(|\\\)`)
	doubleAsteriskRe = regexp.MustCompile(`\*\*`)
)

// Format cleans up spacing and punctuation: whitespace is collapsed,
// stray space before sentence-ending punctuation removed, and the
// default cleanup rules applied. Returns the input unchanged when it is
// empty or whitespace-only.
func Format(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out := whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	out = sentenceEndFixRe.ReplaceAllString(out, "$1")
	out = escapedParensRe.ReplaceAllString(out, "$")
	out = doubleAsteriskRe.ReplaceAllString(out, "*")
	return out
}

// ApplyRules applies ordered regex replacement rules to text. Unlike
// Format's built-in cleanup, a rule that fails to compile aborts with an
// error naming the offending rule so the caller can surface it.
func ApplyRules(text string, rules []domain.RegexRule) (string, error) {
	out := text
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return "", fmt.Errorf("invalid regex pattern in rule %d (%q): %w", i+1, rule.Pattern, err)
		}
		out = re.ReplaceAllString(out, rule.Replacement)
	}
	return out, nil
}
