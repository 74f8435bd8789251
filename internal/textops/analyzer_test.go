package textops

import (
	"testing"
)

func TestStatistics_BasicCounts(t *testing.T) {
	stats := Statistics("Hello world. Go is fun!\nSecond line here.")

	if stats.Basic.Words != 8 {
		t.Errorf("Words = %d, want 8", stats.Basic.Words)
	}
	if stats.Basic.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", stats.Basic.Sentences)
	}
	if stats.Basic.Lines != 2 {
		t.Errorf("Lines = %d, want 2", stats.Basic.Lines)
	}
}

func TestStatistics_CJKSentences(t *testing.T) {
	stats := Statistics("你好。今天天气很好！出去走走？")
	if stats.Basic.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", stats.Basic.Sentences)
	}
}

func TestStatistics_CharacterTypes(t *testing.T) {
	stats := Statistics("ab1 c,d")

	if got := stats.CharacterTypes.Letters; got != 4 {
		t.Errorf("Letters = %d, want 4", got)
	}
	if got := stats.CharacterTypes.Digits; got != 1 {
		t.Errorf("Digits = %d, want 1", got)
	}
	if got := stats.CharacterTypes.Spaces; got != 1 {
		t.Errorf("Spaces = %d, want 1", got)
	}
	if got := stats.CharacterTypes.Punctuation; got != 1 {
		t.Errorf("Punctuation = %d, want 1", got)
	}
}

func TestStatistics_WordFrequency(t *testing.T) {
	stats := Statistics("apple apple banana the the the to of")

	// stop words and words of two runes or fewer are excluded
	for _, wc := range stats.WordFrequency {
		if wc.Word == "the" || wc.Word == "to" || wc.Word == "of" {
			t.Errorf("stop word %q survived filtering", wc.Word)
		}
	}
	if len(stats.WordFrequency) != 2 {
		t.Fatalf("WordFrequency = %v, want two entries", stats.WordFrequency)
	}
	if stats.WordFrequency[0].Word != "apple" || stats.WordFrequency[0].Count != 2 {
		t.Errorf("top word = %+v, want apple x2", stats.WordFrequency[0])
	}
}

func TestStatistics_TopTenCap(t *testing.T) {
	stats := Statistics("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima")
	if len(stats.WordFrequency) != 10 {
		t.Errorf("WordFrequency length = %d, want 10", len(stats.WordFrequency))
	}
}

func TestStatistics_EmptyInput(t *testing.T) {
	stats := Statistics("   ")
	if stats.Basic.Words != 0 || stats.Basic.Sentences != 0 {
		t.Errorf("blank input produced counts: %+v", stats.Basic)
	}
	if stats.WordFrequency == nil {
		t.Error("WordFrequency should be empty, not nil")
	}
}

func TestAnalyze_ReadabilityBounds(t *testing.T) {
	cases := []string{
		"The cat sat on the mat.",
		"Notwithstanding extraordinarily complicated multisyllabic terminology, comprehensibility deteriorates considerably.",
		"Go. Run. Win.",
	}
	for _, text := range cases {
		got := Analyze(text).Readability.FleschReadingEase
		if got < 0 || got > 100 {
			t.Errorf("Flesch score for %q = %v, outside [0, 100]", text, got)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"cake", 1}, // trailing e discounts one vowel group
		{"banana", 3},
		{"rhythm", 1},
		{"xyz", 1}, // floor of one
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word); got != tc.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestAnalyze_Sentiment(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"positive english", "this is a great and wonderful success", "positive"},
		{"negative english", "a terrible, horrible failure", "negative"},
		{"positive chinese", "今天很开心，一切都很美好", "positive"},
		{"neutral", "the report covers the third quarter", "neutral"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.text).Sentiment
			if got.Label != tc.want {
				t.Errorf("sentiment = %s (pos %d, neg %d), want %s", got.Label, got.PositiveCount, got.NegativeCount, tc.want)
			}
		})
	}
}

func TestAnalyze_LanguageType(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"english", "purely english text here", "english"},
		{"chinese", "这是一段中文文本", "chinese"},
		{"mixed", "中文内容 and english 混合文本 text 一起", "mixed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.text).LanguageFeatures.LanguageType
			if got != tc.want {
				t.Errorf("language type = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAnalyze_ContentFeatures(t *testing.T) {
	got := Analyze("Visit https://example.com or mail team@example.com, call 555-123-4567, ref 42.").LanguageFeatures.Features

	if !got.HasNumbers {
		t.Error("HasNumbers = false")
	}
	if !got.HasURLs {
		t.Error("HasURLs = false")
	}
	if !got.HasEmails {
		t.Error("HasEmails = false")
	}
	if !got.HasPhoneNumbers {
		t.Error("HasPhoneNumbers = false")
	}

	plain := Analyze("no special content here").LanguageFeatures.Features
	if plain.HasNumbers || plain.HasURLs || plain.HasEmails || plain.HasPhoneNumbers {
		t.Errorf("plain text flagged: %+v", plain)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	got := Analyze("")
	if got.Sentiment.Label != "neutral" {
		t.Errorf("sentiment = %s, want neutral", got.Sentiment.Label)
	}
	if got.LanguageFeatures.LanguageType != "unknown" {
		t.Errorf("language type = %s, want unknown", got.LanguageFeatures.LanguageType)
	}
}
