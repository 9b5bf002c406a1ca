// Package main provides the Note Garden terminal notebook application.
// Notes live in local JSON storage and are organized into notebooks by
// their first tag. An LLM can generate tags and summaries for a note,
// and an MCP knowledge graph server can extract entities and relations
// from note content.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	appconfig "github.com/notegarden/notegarden/pkg/config"
	"github.com/notegarden/notegarden/pkg/enrich"
	"github.com/notegarden/notegarden/pkg/knowledge"
	"github.com/notegarden/notegarden/pkg/knowledge/mcpcatalog"
	"github.com/notegarden/notegarden/pkg/logging"
	"github.com/notegarden/notegarden/pkg/notes"
	"github.com/notegarden/notegarden/pkg/tui"
)

const (
	version      = "0.1.0"       // Version of Note Garden
	defaultModel = "gpt-4o-mini" // Default model for tag and summary generation
)

// Config holds the application configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	NotesPath   string
	ConfigPath  string
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("Note Garden v%s\n", version)
		return
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.APIKey, "api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
	flag.StringVar(&config.BaseURL, "base-url", "", "OpenAI API base URL (or set OPENAI_BASE_URL env var)")
	flag.StringVar(&config.Model, "model", defaultModel, "LLM model for tag and summary generation")
	flag.StringVar(&config.NotesPath, "notes", "", "Path to the notes file (default: ~/.notegarden/notes.json)")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to the config file (default: ~/.notegarden/config.json)")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Note Garden - a terminal notebook with LLM-assisted organization\n\n")
		fmt.Fprintf(os.Stderr, "Usage: notegarden [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     OpenAI API key\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_BASE_URL    OpenAI API base URL (for compatible APIs)\n")
		fmt.Fprintf(os.Stderr, "\nAll LLM settings are optional. Without an API key the notebook\n")
		fmt.Fprintf(os.Stderr, "still works; only tag and summary generation is disabled.\n")
	}

	flag.Parse()
	return config
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	// Initialize global configuration
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	logger, err := logging.NewLogger("main")
	if err != nil {
		logger = logging.Nop()
	}
	defer logger.Close()

	// Resolve the LLM provider. A missing API key is allowed; the TUI
	// reports it when generation is requested.
	provider := appconfig.BuildProvider(config.Model, config.BaseURL, config.APIKey, defaultModel)
	coordinator := enrich.NewCoordinator(provider)

	// Knowledge extraction is only wired when an MCP server is configured
	var orchestrator *knowledge.Orchestrator
	if knowledgeCfg := appconfig.GetKnowledge(); knowledgeCfg != nil && knowledgeCfg.GetServerCommand() != "" {
		catalog := mcpcatalog.NewProvider(
			knowledgeCfg.GetServerCommand(),
			knowledgeCfg.GetServerArgs(),
			logger,
			mcpcatalog.WithEnv(knowledgeCfg.GetServerEnv()),
		)
		orchestrator = knowledge.NewOrchestrator(provider, catalog, logger)
		logger.Infof("knowledge extraction enabled via %s", knowledgeCfg.GetServerCommand())
	}

	// Load the note collection, seeding welcome notes on first run
	store, err := notes.NewStore(config.NotesPath)
	if err != nil {
		return fmt.Errorf("failed to open note store: %w", err)
	}
	collection, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	logger.Infof("loaded %d notes from %s", collection.Len(), store.Path())

	executor := tui.NewExecutor(store, collection, coordinator, orchestrator, logger)
	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}

	return nil
}
