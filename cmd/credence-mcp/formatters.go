package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/content"
)

// formatCredibilityScore formats a scored article as markdown
func formatCredibilityScore(resp models.CredibilityResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Credibility: %.1f / 100 (%s)\n\n", resp.Score, resp.BadgeText))
	sb.WriteString(fmt.Sprintf("**Article:** %s\n", resp.ArticleID))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", resp.VerificationStatus))
	sb.WriteString(fmt.Sprintf("**Confidence:** %.2f\n", resp.Confidence))
	sb.WriteString(fmt.Sprintf("**Sources:** %d\n", resp.SourceCount))
	if resp.Explanation != "" {
		sb.WriteString(fmt.Sprintf("**Summary:** %s\n", resp.Explanation))
	}

	sb.WriteString("\n### Factors\n\n")
	names := make([]string, 0, len(resp.Factors))
	for name := range resp.Factors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- %s: %.1f\n", name, resp.Factors[name]))
	}

	if len(resp.SimilarArticles) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Similar articles:** %s\n", strings.Join(resp.SimilarArticles, ", ")))
	}
	writeList(&sb, "Strengths", resp.Strengths)
	writeList(&sb, "Flags", resp.Flags)

	if len(resp.Fallbacks) > 0 {
		sb.WriteString("\n### Fallbacks\n\n")
		factors := make([]string, 0, len(resp.Fallbacks))
		for factor := range resp.Fallbacks {
			factors = append(factors, factor)
		}
		sort.Strings(factors)
		for _, factor := range factors {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", factor, resp.Fallbacks[factor]))
		}
	}

	return sb.String()
}

// formatBadge formats a badge as markdown
func formatBadge(score float64, badge models.Badge) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s %s\n\n", badge.Icon, badge.Text))
	sb.WriteString(fmt.Sprintf("**Score:** %.1f\n", score))
	sb.WriteString(fmt.Sprintf("**Color:** %s\n", badge.Color))
	sb.WriteString(fmt.Sprintf("**Description:** %s\n", badge.Description))
	return sb.String()
}

// formatModeration formats a moderation verdict as markdown
func formatModeration(resp *models.ModerateResponse) string {
	var sb strings.Builder
	safe := "safe"
	if !resp.IsSafe {
		safe = "unsafe"
	}
	sb.WriteString(fmt.Sprintf("## Moderation: %s (%s)\n\n", resp.RecommendedAction, safe))
	sb.WriteString(fmt.Sprintf("**Overall risk:** %.3f\n\n", resp.OverallRiskScore))

	sb.WriteString("| Category | Flagged | Confidence | Explanation |\n")
	sb.WriteString("|----------|---------|------------|-------------|\n")
	for _, r := range resp.Results {
		sb.WriteString(fmt.Sprintf("| %s | %t | %.2f | %s |\n", r.Category, r.Flagged, r.Confidence, r.Explanation))
	}
	return sb.String()
}

// formatSummary formats a summary as markdown
func formatSummary(resp *models.SummarizeResponse) string {
	var sb strings.Builder
	sb.WriteString("## Summary\n\n")
	sb.WriteString(resp.Summary)
	sb.WriteString("\n")

	writeList(&sb, "Key Points", resp.KeyPoints)

	if resp.Category != "" {
		sb.WriteString(fmt.Sprintf("\n**Category:** %s\n", resp.Category))
	}
	sb.WriteString(fmt.Sprintf("**Words:** %d (%.0f%% shorter)\n", resp.WordCount, resp.ReductionRatio*100))
	return sb.String()
}

// formatTranslation formats a translation as markdown
func formatTranslation(resp *models.TranslateResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Translation (%s → %s)\n\n",
		content.LanguageName(resp.SourceLanguage), content.LanguageName(resp.TargetLanguage)))
	sb.WriteString(resp.TranslatedContent)
	sb.WriteString("\n")
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n### %s\n\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
}
