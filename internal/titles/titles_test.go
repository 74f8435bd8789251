package titles

import (
	"strings"
	"testing"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

func TestForTask_KeywordsKeepOriginalOrder(t *testing.T) {
	got := ForTask(domain.KindTextTransform, "processing pipelines transform documents quickly")

	// the three longest tokens, in the order they appear in the text
	if got != "processing pipelines transform" {
		t.Errorf("title = %q", got)
	}
}

func TestForTask_UsesFirstSentenceOnly(t *testing.T) {
	got := ForTask(domain.KindTextTransform, "short intro here. extremely distinctive vocabulary afterwards")

	if strings.Contains(got, "distinctive") {
		t.Errorf("title %q drew from a later sentence", got)
	}
}

func TestForTask_FiltersStopWords(t *testing.T) {
	got := ForTask(domain.KindTextTransform, "the report for the quarter")

	for _, stop := range []string{"the", "for"} {
		for _, word := range strings.Fields(got) {
			if strings.EqualFold(word, stop) {
				t.Errorf("title %q contains stop word %q", got, stop)
			}
		}
	}
}

func TestForTask_FallbackForEmptyInput(t *testing.T) {
	cases := []struct {
		kind  domain.TaskKind
		input string
		want  string
	}{
		{domain.KindTextTransform, "", "text-transform task"},
		{domain.KindTranslation, "   \n ", "translation task"},
		{domain.KindRegexTransform, "a a a", "regex-transform task"}, // nothing under two runes survives
	}
	for _, tc := range cases {
		if got := ForTask(tc.kind, tc.input); got != tc.want {
			t.Errorf("ForTask(%s, %q) = %q, want %q", tc.kind, tc.input, got, tc.want)
		}
	}
}

func TestForTask_CapsLength(t *testing.T) {
	long := strings.Repeat("internationalization ", 5)
	got := ForTask(domain.KindTextTransform, long)

	if n := len([]rune(got)); n > 41 {
		t.Errorf("title length = %d runes, want at most 41", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated title %q missing ellipsis", got)
	}
}

func TestForTask_ChineseInput(t *testing.T) {
	got := ForTask(domain.KindTranslation, "今天天气不错。明天会下雨")
	if got == "" || strings.HasSuffix(got, " task") {
		t.Errorf("title = %q, want keywords from the Chinese sentence", got)
	}
}
