package textops

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[。！？.!?]+`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	chineseRe       = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	asciiLetterRe   = regexp.MustCompile(`[a-zA-Z]`)
	digitRe         = regexp.MustCompile(`\d`)
	urlRe           = regexp.MustCompile(`https?://[\w$\-_@.&+!*(),%]+`)
	emailRe         = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe         = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

var positiveWords = []string{
	"好", "棒", "优秀", "喜欢", "爱", "开心", "快乐", "成功", "胜利", "美好",
	"good", "great", "excellent", "love", "happy", "success", "wonderful", "amazing",
}

var negativeWords = []string{
	"坏", "糟糕", "讨厌", "恨", "伤心", "痛苦", "失败", "失望", "可怕", "恐怖",
	"bad", "terrible", "hate", "sad", "pain", "failure", "disappointing", "horrible",
}

const topWordCount = 10

// Statistics generates counts, character classes, a word-frequency
// ranking and derived averages for the text. Sentence splitting is aware
// of both ASCII and CJK terminators.
func Statistics(text string) *domain.Statistics {
	if strings.TrimSpace(text) == "" {
		return &domain.Statistics{WordFrequency: []domain.WordCount{}}
	}

	basic := basicStats(text)
	freq := wordFrequency(text)

	return &domain.Statistics{
		Basic:          basic,
		CharacterTypes: charStats(text),
		WordFrequency:  freq,
		Averages:       averages(basic, freq),
	}
}

// Analyze computes readability, sentiment and language features
func Analyze(text string) *domain.Analysis {
	if strings.TrimSpace(text) == "" {
		return &domain.Analysis{
			Sentiment:        domain.Sentiment{Label: "neutral"},
			LanguageFeatures: domain.LanguageFeatures{LanguageType: "unknown"},
		}
	}
	return &domain.Analysis{
		Readability:      readability(text),
		Sentiment:        sentiment(text),
		LanguageFeatures: languageFeatures(text),
	}
}

func basicStats(text string) domain.BasicStats {
	sentences := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	return domain.BasicStats{
		Characters: len([]rune(text)),
		Words:      len(strings.Fields(text)),
		Lines:      len(strings.Split(strings.TrimRight(text, "\n"), "\n")),
		Sentences:  sentences,
	}
}

func charStats(text string) domain.CharStats {
	var cs domain.CharStats
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			cs.Letters++
		case unicode.IsDigit(r):
			cs.Digits++
		case unicode.IsSpace(r):
			cs.Spaces++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			cs.Punctuation++
		}
	}
	return cs
}

func wordFrequency(text string) []domain.WordCount {
	counts := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(w)) <= 2 || stopWords[w] {
			continue
		}
		counts[w]++
	}

	freq := make([]domain.WordCount, 0, len(counts))
	for w, c := range counts {
		freq = append(freq, domain.WordCount{Word: w, Count: c})
	}
	sort.Slice(freq, func(i, j int) bool {
		if freq[i].Count != freq[j].Count {
			return freq[i].Count > freq[j].Count
		}
		return freq[i].Word < freq[j].Word
	})
	if len(freq) > topWordCount {
		freq = freq[:topWordCount]
	}
	return freq
}

func averages(basic domain.BasicStats, freq []domain.WordCount) domain.Averages {
	var avgWordLen float64
	if len(freq) > 0 {
		totalLen, totalWords := 0, 0
		for _, wc := range freq {
			totalLen += len([]rune(wc.Word)) * wc.Count
			totalWords += wc.Count
		}
		if totalWords > 0 {
			avgWordLen = float64(totalLen) / float64(totalWords)
		}
	}

	var avgSentLen float64
	if basic.Sentences > 0 {
		avgSentLen = float64(basic.Words) / float64(basic.Sentences)
	}

	return domain.Averages{
		WordLength:     round2(avgWordLen),
		SentenceLength: round2(avgSentLen),
	}
}

func readability(text string) domain.Readability {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	if len(sentences) == 0 || len(words) == 0 {
		return domain.Readability{}
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	avgSentLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(syllables) / float64(len(words))

	// Flesch Reading Ease, clamped to [0, 100]
	score := 206.835 - 1.015*avgSentLen - 84.6*avgSyllables
	score = math.Max(0, math.Min(100, score))

	return domain.Readability{
		FleschReadingEase:   round2(score),
		AvgSentenceLength:   round2(avgSentLen),
		AvgSyllablesPerWord: round2(avgSyllables),
	}
}

func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	onVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !onVowel {
			count++
		}
		onVowel = isVowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

func sentiment(text string) domain.Sentiment {
	lower := strings.ToLower(text)

	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	totalWords := len(strings.Fields(text))
	if totalWords == 0 {
		return domain.Sentiment{Label: "neutral"}
	}

	posRatio := float64(positive) / float64(totalWords)
	negRatio := float64(negative) / float64(totalWords)

	label := "neutral"
	if posRatio > negRatio {
		label = "positive"
	} else if negRatio > posRatio {
		label = "negative"
	}

	return domain.Sentiment{
		Label:         label,
		PositiveRatio: round3(posRatio),
		NegativeRatio: round3(negRatio),
		PositiveCount: positive,
		NegativeCount: negative,
	}
}

func languageFeatures(text string) domain.LanguageFeatures {
	chinese := len(chineseRe.FindAllString(text, -1))
	english := len(asciiLetterRe.FindAllString(text, -1))
	total := len([]rune(strings.ReplaceAll(text, " ", "")))

	lf := domain.LanguageFeatures{LanguageType: "unknown"}
	if total > 0 {
		lf.ChineseRatio = round3(float64(chinese) / float64(total))
		lf.EnglishRatio = round3(float64(english) / float64(total))
		switch {
		case lf.ChineseRatio > 0.3 && lf.EnglishRatio > 0.3:
			lf.LanguageType = "mixed"
		case lf.ChineseRatio > lf.EnglishRatio:
			lf.LanguageType = "chinese"
		case lf.EnglishRatio > lf.ChineseRatio:
			lf.LanguageType = "english"
		default:
			lf.LanguageType = "mixed"
		}
	}

	lf.Features = domain.ContentFeatures{
		HasNumbers:      digitRe.MatchString(text),
		HasURLs:         urlRe.MatchString(text),
		HasEmails:       emailRe.MatchString(text),
		HasPhoneNumbers: phoneRe.MatchString(text),
	}
	return lf
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
