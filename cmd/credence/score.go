package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ternarybob/credence/internal/app"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/models"
	"github.com/ternarybob/credence/internal/services/credibility"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var inputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "request file (.json, .yaml or .yml); - reads JSON from stdin",
		Required: true,
	},
	&cli.StringFlag{
		Name:  "format",
		Usage: "output format: json or yaml",
		Value: "json",
	},
}

var scoreCommand = &cli.Command{
	Name:      "score",
	Usage:     "Score one article against related coverage",
	UsageText: "credence score --file request.yaml [--format yaml]",
	Flags:     inputFlags,
	Action:    scoreAction,
}

var batchCommand = &cli.Command{
	Name:      "batch",
	Usage:     "Score every article in a set against the rest of the set",
	UsageText: "credence batch --file articles.json",
	Flags:     inputFlags,
	Action:    batchAction,
}

var badgeCommand = &cli.Command{
	Name:      "badge",
	Usage:     "Show the display badge for a score",
	ArgsUsage: "<score>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "format", Usage: "output format: json or yaml", Value: "json"},
	},
	Action: badgeAction,
}

func scoreAction(c *cli.Context) error {
	var req models.CalculateCredibilityRequest
	if err := readRequest(c.String("file"), &req); err != nil {
		return err
	}
	if err := common.Validate(&req); err != nil {
		return err
	}

	application, err := newApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	score, err := application.Scorer.Calculate(ctx, req.Article, req.RelatedArticles)
	if err != nil {
		return err
	}

	return writeOutput(os.Stdout, c.String("format"), credibility.WithBadge(score))
}

func batchAction(c *cli.Context) error {
	var req models.BatchCredibilityRequest
	if err := readRequest(c.String("file"), &req); err != nil {
		return err
	}
	if err := common.Validate(&req); err != nil {
		return err
	}

	application, err := newApp(c)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := application.Scorer.CalculateBatch(ctx, req.Articles)
	if err != nil {
		return err
	}

	return writeOutput(os.Stdout, c.String("format"), credibility.BatchWithBadges(result))
}

func badgeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one score argument")
	}
	score, err := strconv.ParseFloat(c.Args().First(), 64)
	if err != nil || math.IsNaN(score) {
		return fmt.Errorf("score must be a number, got %q", c.Args().First())
	}

	return writeOutput(os.Stdout, c.String("format"), credibility.GetBadge(score))
}

func newApp(c *cli.Context) (*app.App, error) {
	config, logger, err := setup(c, true)
	if err != nil {
		return nil, err
	}
	return app.New(config, logger)
}

// readRequest decodes a request file as YAML or JSON by extension
func readRequest(path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}
