// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 10:12:40 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/credence/internal/common"
	"github.com/ternarybob/credence/internal/handlers"
	"github.com/ternarybob/credence/internal/interfaces"
	"github.com/ternarybob/credence/internal/services/content"
	"github.com/ternarybob/credence/internal/services/credibility"
	"github.com/ternarybob/credence/internal/services/embeddings"
	"github.com/ternarybob/credence/internal/services/llm"
	"github.com/ternarybob/credence/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Remote-call audit log (null logger when disabled)
	AuditLogger interfaces.AuditLogger
	auditStore  *badger.AuditStorage
	pruneCron   *cron.Cron

	// Provider services
	LLMService       *llm.ProviderFactory
	EmbeddingService interfaces.EmbeddingService // nil when no embedding provider is configured

	// Domain services
	Scorer     *credibility.Scorer
	Summarizer *content.Summarizer
	Translator *content.Translator
	Moderator  *content.Moderator

	// HTTP handlers
	APIHandler         *handlers.APIHandler
	CredibilityHandler *handlers.CredibilityHandler
	ContentHandler     *handlers.ContentHandler
	AuditHandler       *handlers.AuditHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initAudit(); err != nil {
		return nil, fmt.Errorf("failed to initialize audit log: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Int("completion_providers", len(app.LLMService.Configured())).
		Bool("embeddings_enabled", app.EmbeddingService != nil).
		Bool("audit_enabled", cfg.Audit.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initAudit opens the Badger audit store when auditing is enabled
func (a *App) initAudit() error {
	if !a.Config.Audit.Enabled {
		a.AuditLogger = llm.NewNullAuditLogger()
		return nil
	}

	db, err := badger.NewBadgerDB(a.Logger, a.Config.Audit.Path)
	if err != nil {
		return err
	}
	store := badger.NewAuditStorage(db, a.Config.Audit.LogQueries, a.Logger)
	a.AuditLogger = store
	a.auditStore = store

	a.pruneAudit()

	if schedule := a.Config.Audit.PruneSchedule; schedule != "" {
		a.pruneCron = cron.New()
		if _, err := a.pruneCron.AddFunc(schedule, a.pruneAudit); err != nil {
			store.Close()
			return fmt.Errorf("invalid audit prune schedule %q: %w", schedule, err)
		}
		a.pruneCron.Start()
	}

	a.Logger.Debug().
		Str("path", a.Config.Audit.Path).
		Str("prune_schedule", a.Config.Audit.PruneSchedule).
		Msg("Audit log enabled")
	return nil
}

// pruneAudit deletes audit entries older than the configured retention
func (a *App) pruneAudit() {
	retention := common.ParseDuration(a.Config.Audit.Retention, 7*24*time.Hour)
	if err := a.auditStore.Prune(time.Now().Add(-retention)); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to prune audit log")
	}
}

// initServices builds the provider adapters and the services on top of them.
// A missing embedding key is not fatal: similarity then degrades to no matches.
func (a *App) initServices() error {
	ctx := context.Background()

	factory, err := llm.NewProviderFactory(ctx, a.Config, a.AuditLogger, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create provider factory: %w", err)
	}
	a.LLMService = factory
	if len(factory.Configured()) == 0 {
		a.Logger.Warn().Msg("No completion provider configured; AI verification and fact checks will use neutral scores")
	}

	embedder, err := embeddings.NewServiceFromConfig(ctx, &a.Config.Embeddings, a.AuditLogger, a.Logger)
	if err != nil {
		a.Logger.Warn().Err(err).Str("provider", a.Config.Embeddings.Provider).Msg("Embedding service unavailable; articles will not be clustered")
	} else {
		a.EmbeddingService = embedder
	}

	retry := llm.NewRetryConfig(&a.Config.Retry)

	a.Scorer = credibility.NewScorer(a.LLMService, a.EmbeddingService, &a.Config.Credibility, a.Logger)
	a.Summarizer = content.NewSummarizer(a.LLMService, retry, a.Logger)
	a.Translator = content.NewTranslator(a.LLMService, retry, a.Logger)
	a.Moderator = content.NewModerator(a.LLMService, a.Logger)

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService, a.EmbeddingService, a.Config.Environment, a.Logger)
	a.CredibilityHandler = handlers.NewCredibilityHandler(a.Scorer, a.Logger)
	a.ContentHandler = handlers.NewContentHandler(a.Summarizer, a.Translator, a.Moderator, a.Logger)
	a.AuditHandler = handlers.NewAuditHandler(a.AuditLogger, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.pruneCron != nil {
		<-a.pruneCron.Stop().Done()
		a.pruneCron = nil
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.AuditLogger != nil {
		if err := a.AuditLogger.Close(); err != nil {
			return fmt.Errorf("failed to close audit log: %w", err)
		}
		a.Logger.Debug().Msg("Audit log closed")
	}

	return nil
}
