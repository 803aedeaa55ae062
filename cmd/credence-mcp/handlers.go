package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/handlers"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/credibility"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleScoreCredibility implements the score_credibility tool
func handleScoreCredibility(scorer handlers.CredibilityScorer, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		articleJSON, err := request.RequireString("article")
		if err != nil || articleJSON == "" {
			return textResult("Error: article parameter is required"), nil
		}

		var article models.ArticleMetadata
		if err := json.Unmarshal([]byte(articleJSON), &article); err != nil {
			return textResult(fmt.Sprintf("Error: article is not valid JSON: %v", err)), nil
		}

		var related []*models.ArticleMetadata
		if relatedJSON := request.GetString("related_articles", ""); relatedJSON != "" {
			if err := json.Unmarshal([]byte(relatedJSON), &related); err != nil {
				return textResult(fmt.Sprintf("Error: related_articles is not a valid JSON array: %v", err)), nil
			}
		}

		score, err := scorer.Calculate(ctx, &article, related)
		if err != nil {
			logger.Error().Err(err).Str("article_id", article.ID).Msg("Credibility scoring failed")
			return textResult(fmt.Sprintf("Scoring error: %v", err)), nil
		}

		return textResult(formatCredibilityScore(credibility.WithBadge(score))), nil
	}
}

// handleGetCredibilityBadge implements the get_credibility_badge tool
func handleGetCredibilityBadge() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		score, err := request.RequireFloat("score")
		if err != nil || math.IsNaN(score) {
			return textResult("Error: score must be a number"), nil
		}

		return textResult(formatBadge(score, credibility.GetBadge(score))), nil
	}
}

// handleModerateContent implements the moderate_content tool
func handleModerateContent(moderator handlers.ContentModerator, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil || content == "" {
			return textResult("Error: content parameter is required"), nil
		}

		resp, err := moderator.Moderate(ctx, &models.ModerateRequest{
			Content:    content,
			StrictMode: request.GetBool("strict_mode", false),
		})
		if err != nil {
			logger.Error().Err(err).Msg("Moderation failed")
			return textResult(fmt.Sprintf("Moderation error: %v", err)), nil
		}

		return textResult(formatModeration(resp)), nil
	}
}

// handleSummarizeArticle implements the summarize_article tool
func handleSummarizeArticle(summarizer handlers.ArticleSummarizer, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil || content == "" {
			return textResult("Error: content parameter is required"), nil
		}

		keyPoints := request.GetBool("key_points", true)
		resp, err := summarizer.Summarize(ctx, &models.SummarizeRequest{
			Article: models.ArticleContent{
				Content:       content,
				ContentFormat: request.GetString("content_format", ""),
				Title:         request.GetString("title", ""),
			},
			Length:    models.SummaryLength(request.GetString("length", "")),
			Language:  request.GetString("language", ""),
			KeyPoints: &keyPoints,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Summarization failed")
			return textResult(fmt.Sprintf("Summarization error: %v", err)), nil
		}

		return textResult(formatSummary(resp)), nil
	}
}

// handleTranslateText implements the translate_text tool
func handleTranslateText(translator handlers.TextTranslator, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil || content == "" {
			return textResult("Error: content parameter is required"), nil
		}
		target, err := request.RequireString("target_language")
		if err != nil || target == "" {
			return textResult("Error: target_language parameter is required"), nil
		}

		resp, err := translator.Translate(ctx, &models.TranslateRequest{
			Content:        content,
			TargetLanguage: target,
			SourceLanguage: request.GetString("source_language", ""),
		})
		if err != nil {
			logger.Error().Err(err).Msg("Translation failed")
			return textResult(fmt.Sprintf("Translation error: %v", err)), nil
		}

		return textResult(formatTranslation(resp)), nil
	}
}
