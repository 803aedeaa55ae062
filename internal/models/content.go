package models

import "time"

// Provider names a completion provider selectable per request
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderGemini Provider = "gemini"
)

// SummaryLength is the target size of a summary
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

// TargetWords returns the approximate word target for the length
func (l SummaryLength) TargetWords() int {
	switch l {
	case SummaryShort:
		return 100
	case SummaryLong:
		return 500
	default:
		return 200
	}
}

// Article categories assigned by the summarizer
var SummaryCategories = []string{
	"politics", "sports", "entertainment", "business", "technology",
	"health", "education", "international", "opinion", "general",
}

// SupportedLanguages lists the language codes accepted for translation
var SupportedLanguages = []string{"en", "ne", "hi", "es", "fr", "de", "it", "pt", "ja", "zh", "ko", "ru"}

// ArticleContent is the article payload of a summarize request
type ArticleContent struct {
	Content       string            `json:"content" validate:"required,min=10,max=50000"`
	ContentFormat string            `json:"content_format,omitempty" validate:"omitempty,oneof=text html"`
	Title         string            `json:"title,omitempty"`
	URL           string            `json:"url,omitempty" validate:"omitempty,url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// SummarizeRequest asks for a summary of one article
type SummarizeRequest struct {
	Article   ArticleContent `json:"article" validate:"required"`
	Length    SummaryLength  `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
	Provider  Provider       `json:"provider,omitempty" validate:"omitempty,oneof=claude gemini"`
	KeyPoints *bool          `json:"key_points,omitempty"`
	Language  string         `json:"language,omitempty" validate:"omitempty,oneof=en ne hi es fr de it pt ja zh ko ru"`
}

// WantKeyPoints reports whether key points were requested; the default is true
func (r *SummarizeRequest) WantKeyPoints() bool {
	return r.KeyPoints == nil || *r.KeyPoints
}

// SummarizeResponse is the summarizer output with processing metrics
type SummarizeResponse struct {
	Summary        string    `json:"summary"`
	KeyPoints      []string  `json:"key_points,omitempty"`
	Category       string    `json:"category,omitempty"`
	WordCount      int       `json:"word_count"`
	OriginalLength int       `json:"original_length"`
	ReductionRatio float64   `json:"reduction_ratio"`
	Provider       Provider  `json:"provider"`
	Model          string    `json:"model"`
	ProcessingTime float64   `json:"processing_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// TranslateRequest asks for a translation of a piece of text
type TranslateRequest struct {
	Content            string   `json:"content" validate:"required,min=1,max=10000"`
	SourceLanguage     string   `json:"source_language,omitempty" validate:"omitempty,oneof=en ne hi es fr de it pt ja zh ko ru"`
	TargetLanguage     string   `json:"target_language" validate:"required,oneof=en ne hi es fr de it pt ja zh ko ru"`
	Provider           Provider `json:"provider,omitempty" validate:"omitempty,oneof=claude gemini"`
	PreserveFormatting *bool    `json:"preserve_formatting,omitempty"`
}

// WantPreserveFormatting reports whether formatting should be kept; the default is true
func (r *TranslateRequest) WantPreserveFormatting() bool {
	return r.PreserveFormatting == nil || *r.PreserveFormatting
}

// TranslateResponse is the translator output
type TranslateResponse struct {
	TranslatedContent string    `json:"translated_content"`
	SourceLanguage    string    `json:"source_language"`
	TargetLanguage    string    `json:"target_language"`
	Provider          Provider  `json:"provider"`
	Model             string    `json:"model"`
	ProcessingTime    float64   `json:"processing_time"`
	CreatedAt         time.Time `json:"created_at"`
}

// BatchTranslateRequest translates several requests in order
type BatchTranslateRequest struct {
	Requests []TranslateRequest `json:"requests" validate:"required,min=1,max=50,dive"`
}

// DetectLanguageRequest asks for the language of a piece of text
type DetectLanguageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// DetectLanguageResponse is the detected language and its confidence
type DetectLanguageResponse struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	TextLength int     `json:"text_length"`
}

// Moderation categories
const (
	ModerationHateSpeech     = "hate_speech"
	ModerationViolence       = "violence"
	ModerationSexualContent  = "sexual_content"
	ModerationHarassment     = "harassment"
	ModerationSelfHarm       = "self_harm"
	ModerationSpam           = "spam"
	ModerationMisinformation = "misinformation"
)

// ModerationCategories lists the categories in reporting order
var ModerationCategories = []string{
	ModerationHateSpeech,
	ModerationViolence,
	ModerationSexualContent,
	ModerationHarassment,
	ModerationSelfHarm,
	ModerationSpam,
	ModerationMisinformation,
}

// Moderation actions
const (
	ModerationAllow  = "allow"
	ModerationReview = "review"
	ModerationBlock  = "block"
)

// ModerateRequest asks for a safety check of a piece of text
type ModerateRequest struct {
	Content    string   `json:"content" validate:"required,min=1,max=10000"`
	StrictMode bool     `json:"strict_mode"`
	Provider   Provider `json:"provider,omitempty" validate:"omitempty,oneof=claude gemini"`
}

// ModerationResult is the verdict for a single category
type ModerationResult struct {
	Category    string  `json:"category"`
	Flagged     bool    `json:"flagged"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation,omitempty"`
}

// ModerateResponse is the overall moderation verdict
type ModerateResponse struct {
	IsSafe            bool               `json:"is_safe"`
	OverallRiskScore  float64            `json:"overall_risk_score"`
	Results           []ModerationResult `json:"results"`
	RecommendedAction string             `json:"recommended_action"`
	Provider          Provider           `json:"provider"`
	Model             string             `json:"model"`
	ProcessingTime    float64            `json:"processing_time"`
	CreatedAt         time.Time          `json:"created_at"`
}
