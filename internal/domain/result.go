package domain

// Result is the structured payload a backend returns for a completed
// task. Each kind has its own result type with an explicit primary text
// field; DisplayText applies the shared fallback chain (primary field,
// then generic text, then the raw payload string) so callers never have
// to guess which field holds the text.
type Result interface {
	// DisplayText returns the text to render for this result
	DisplayText() string
	// Stats returns the statistics sub-structure, if any
	Stats() *Statistics
	// Analysis returns the analysis sub-structure, if any
	Analysis() *Analysis
}

// TextTransformResult is the payload of a completed text-transform task
type TextTransformResult struct {
	ProcessedText string      `json:"processed_text,omitempty"`
	Text          string      `json:"text,omitempty"`
	Raw           string      `json:"-"`
	Statistics    *Statistics `json:"statistics,omitempty"`
	AnalysisData  *Analysis   `json:"analysis,omitempty"`
	Operations    []Operation `json:"operations,omitempty"`
}

func (r *TextTransformResult) DisplayText() string {
	return firstNonEmpty(r.ProcessedText, r.Text, r.Raw)
}
func (r *TextTransformResult) Stats() *Statistics { return r.Statistics }
func (r *TextTransformResult) Analysis() *Analysis { return r.AnalysisData }

// RegexTransformResult is the payload of a completed regex-transform task
type RegexTransformResult struct {
	ProcessedText string `json:"processed_text,omitempty"`
	Text          string `json:"text,omitempty"`
	Raw           string `json:"-"`
	RulesApplied  int    `json:"rules_applied,omitempty"`
}

func (r *RegexTransformResult) DisplayText() string {
	return firstNonEmpty(r.ProcessedText, r.Text, r.Raw)
}
func (r *RegexTransformResult) Stats() *Statistics { return nil }
func (r *RegexTransformResult) Analysis() *Analysis { return nil }

// TranslationResult is the payload of a completed translation task
type TranslationResult struct {
	TranslatedText   string `json:"translated_text,omitempty"`
	Text             string `json:"text,omitempty"`
	Raw              string `json:"-"`
	ServiceUsed      string `json:"service_used,omitempty"`
	PromptUsed       string `json:"prompt_used,omitempty"`
	ChunksTranslated int    `json:"chunks_translated,omitempty"`
}

func (r *TranslationResult) DisplayText() string {
	return firstNonEmpty(r.TranslatedText, r.Text, r.Raw)
}
func (r *TranslationResult) Stats() *Statistics { return nil }
func (r *TranslationResult) Analysis() *Analysis { return nil }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Statistics holds the statistics view of a text-transform result
type Statistics struct {
	Basic          BasicStats  `json:"basic"`
	CharacterTypes CharStats   `json:"character_types"`
	WordFrequency  []WordCount `json:"word_frequency"`
	Averages       Averages    `json:"averages"`
}

// BasicStats are the raw counts of a text
type BasicStats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
	Sentences  int `json:"sentences"`
}

// CharStats break characters down by class
type CharStats struct {
	Letters     int `json:"letters"`
	Digits      int `json:"digits"`
	Spaces      int `json:"spaces"`
	Punctuation int `json:"punctuation"`
}

// WordCount is one entry of the word-frequency ranking
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Averages are derived mean values
type Averages struct {
	WordLength     float64 `json:"average_word_length"`
	SentenceLength float64 `json:"average_sentence_length"`
}

// Analysis holds the analysis view of a text-transform result
type Analysis struct {
	Readability      Readability      `json:"readability"`
	Sentiment        Sentiment        `json:"sentiment"`
	LanguageFeatures LanguageFeatures `json:"language_features"`
}

// Readability holds readability metrics
type Readability struct {
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	AvgSentenceLength   float64 `json:"average_sentence_length"`
	AvgSyllablesPerWord float64 `json:"average_syllables_per_word"`
}

// Sentiment holds the lexicon-based sentiment verdict
type Sentiment struct {
	Label         string  `json:"sentiment"`
	PositiveRatio float64 `json:"positive_ratio"`
	NegativeRatio float64 `json:"negative_ratio"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
}

// LanguageFeatures describe the detected language mix and content features
type LanguageFeatures struct {
	LanguageType string          `json:"language_type"`
	ChineseRatio float64         `json:"chinese_ratio"`
	EnglishRatio float64         `json:"english_ratio"`
	Features     ContentFeatures `json:"features"`
}

// ContentFeatures flag notable content embedded in the text
type ContentFeatures struct {
	HasNumbers      bool `json:"has_numbers"`
	HasURLs         bool `json:"has_urls"`
	HasEmails       bool `json:"has_emails"`
	HasPhoneNumbers bool `json:"has_phone_numbers"`
}
