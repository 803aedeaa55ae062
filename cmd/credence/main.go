// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 2:14:07 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/urfave/cli/v2"
)

// Config files checked when no --config flag is given
var defaultConfigPaths = []string{
	"credence.toml",
	"deployments/local/credence.toml",
}

func main() {
	app := &cli.App{
		Name:    "credence",
		Usage:   "News article credibility scoring and content service",
		Version: common.GetFullVersion(),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file path (repeatable, later files override earlier ones)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level override (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			scoreCommand,
			batchCommand,
			badgeCommand,
			versionCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		// Global logger falls back to a console logger when setup never ran
		common.GetLogger().Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// loadConfig resolves configuration with priority:
// defaults -> config files -> environment -> CLI flags
func loadConfig(c *cli.Context) (*common.Config, error) {
	configFiles := c.StringSlice("config")

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		for _, path := range defaultConfigPaths {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration %v: %w", configFiles, err)
	}

	if level := c.String("log-level"); level != "" {
		config.Logging.Level = level
	}

	return config, nil
}

// setup loads configuration and initializes the logger. One-shot commands
// write results to stdout, so they log at warn unless --log-level is given.
func setup(c *cli.Context, oneShot bool) (*common.Config, arbor.ILogger, error) {
	config, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	common.ApplyFlagOverrides(config, c.Int("port"), c.String("host"))
	if oneShot && c.String("log-level") == "" {
		config.Logging.Level = "warn"
	}

	logger := common.InitLogger(config)

	logger.Debug().
		Str("environment", config.Environment).
		Str("log_level", config.Logging.Level).
		Strs("log_output", config.Logging.Output).
		Str("default_provider", string(config.LLM.DefaultProvider)).
		Str("embeddings_provider", config.Embeddings.Provider).
		Bool("audit_enabled", config.Audit.Enabled).
		Msg("Resolved configuration (sanitized)")

	return config, logger, nil
}
