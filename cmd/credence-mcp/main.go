package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/credence/internal/app"
	"github.com/ternarybob/credence/internal/common"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CREDENCE_CONFIG")
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	} else if _, err := os.Stat("credence.toml"); err == nil {
		paths = append(paths, "credence.toml")
	}

	config, err := common.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize minimal logger for MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"credence",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register credibility tools
	mcpServer.AddTool(createScoreCredibilityTool(), handleScoreCredibility(application.Scorer, logger))
	mcpServer.AddTool(createGetCredibilityBadgeTool(), handleGetCredibilityBadge())

	// Register content tools
	mcpServer.AddTool(createModerateContentTool(), handleModerateContent(application.Moderator, logger))
	mcpServer.AddTool(createSummarizeArticleTool(), handleSummarizeArticle(application.Summarizer, logger))
	mcpServer.AddTool(createTranslateTextTool(), handleTranslateText(application.Translator, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
