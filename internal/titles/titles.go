// Package titles derives human-readable task titles from input text.
package titles

import (
	"regexp"
	"sort"
	"strings"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

var (
	sentenceRe = regexp.MustCompile(`[。！？.!?\n]+`)
	tokenRe    = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "is": true,
	"are": true, "was": true, "this": true, "that": true,
}

const (
	maxKeywords = 3
	maxTitleLen = 40
)

// ForTask derives a short title from the task's input text. Purely
// cosmetic: it never fails and always returns a usable string, falling
// back to "<kind> task" when nothing can be extracted.
func ForTask(kind domain.TaskKind, input string) string {
	if title := fromKeywords(input); title != "" {
		return title
	}
	return string(kind) + " task"
}

// fromKeywords picks the longest non-stop-word tokens of the first
// non-empty sentence, keeps their original order, and caps the length.
func fromKeywords(input string) string {
	sentence := firstSentence(input)
	if sentence == "" {
		return ""
	}

	tokens := tokenRe.FindAllString(sentence, -1)
	type ranked struct {
		word string
		pos  int
	}
	var candidates []ranked
	for i, tok := range tokens {
		if stopWords[strings.ToLower(tok)] || len([]rune(tok)) < 2 {
			continue
		}
		candidates = append(candidates, ranked{word: tok, pos: i})
	}
	if len(candidates) == 0 {
		return ""
	}

	// Prefer longer tokens, then earlier position
	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := len([]rune(candidates[i].word)), len([]rune(candidates[j].word))
		if li != lj {
			return li > lj
		}
		return candidates[i].pos < candidates[j].pos
	})
	if len(candidates) > maxKeywords {
		candidates = candidates[:maxKeywords]
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].pos < candidates[j].pos })

	words := make([]string, len(candidates))
	for i, c := range candidates {
		words[i] = c.word
	}
	title := strings.Join(words, " ")
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen]) + "…"
	}
	return title
}

func firstSentence(input string) string {
	for _, s := range sentenceRe.Split(input, -1) {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return ""
}
