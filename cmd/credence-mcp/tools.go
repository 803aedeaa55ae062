package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createScoreCredibilityTool returns the score_credibility tool definition
func createScoreCredibilityTool() mcp.Tool {
	return mcp.NewTool("score_credibility",
		mcp.WithDescription("Score the credibility of a news article from cross-source coverage, source reputation and AI verification"),
		mcp.WithString("article",
			mcp.Required(),
			mcp.Description("Article JSON: id, title, content, source_name, source_type, source_credibility (0-100), published_at (RFC3339)"),
		),
		mcp.WithString("related_articles",
			mcp.Description("JSON array of candidate articles in the same shape; only those published within 72 hours of the article are considered"),
		),
	)
}

// createGetCredibilityBadgeTool returns the get_credibility_badge tool definition
func createGetCredibilityBadgeTool() mcp.Tool {
	return mcp.NewTool("get_credibility_badge",
		mcp.WithDescription("Show the display badge (color, text, icon) for a credibility score"),
		mcp.WithNumber("score",
			mcp.Required(),
			mcp.Description("Credibility score, normally 0 to 100; scores outside the range take the nearest tier"),
		),
	)
}

// createModerateContentTool returns the moderate_content tool definition
func createModerateContentTool() mcp.Tool {
	return mcp.NewTool("moderate_content",
		mcp.WithDescription("Check text for hate speech, violence, sexual content, harassment, self harm, spam and misinformation"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text to moderate (max 10000 characters)"),
		),
		mcp.WithBoolean("strict_mode",
			mcp.Description("Use the stricter block and review thresholds (default: false)"),
		),
	)
}

// createSummarizeArticleTool returns the summarize_article tool definition
func createSummarizeArticleTool() mcp.Tool {
	return mcp.NewTool("summarize_article",
		mcp.WithDescription("Summarize a news article with optional key points and a category"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Article text or HTML (10 to 50000 characters)"),
		),
		mcp.WithString("title",
			mcp.Description("Article title"),
		),
		mcp.WithString("content_format",
			mcp.Description("text or html (default: text)"),
			mcp.Enum("text", "html"),
		),
		mcp.WithString("length",
			mcp.Description("short, medium or long (default: medium)"),
			mcp.Enum("short", "medium", "long"),
		),
		mcp.WithString("language",
			mcp.Description("Summary language code, e.g. en, ne, hi (default: en)"),
		),
		mcp.WithBoolean("key_points",
			mcp.Description("Include key points (default: true)"),
		),
	)
}

// createTranslateTextTool returns the translate_text tool definition
func createTranslateTextTool() mcp.Tool {
	return mcp.NewTool("translate_text",
		mcp.WithDescription("Translate text between the supported languages"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text to translate (max 10000 characters)"),
		),
		mcp.WithString("target_language",
			mcp.Required(),
			mcp.Description("Target language code: en, ne, hi, es, fr, de, it, pt, ja, zh, ko, ru"),
		),
		mcp.WithString("source_language",
			mcp.Description("Source language code (detected when omitted)"),
		),
	)
}
