package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trongvanphan/pocHR-LightRAG/internal/config"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core"
	"github.com/trongvanphan/pocHR-LightRAG/internal/driver"
	"github.com/trongvanphan/pocHR-LightRAG/internal/llm"
	"github.com/trongvanphan/pocHR-LightRAG/internal/logger"
	"github.com/trongvanphan/pocHR-LightRAG/internal/server"
	"github.com/trongvanphan/pocHR-LightRAG/internal/store"
)

var version = "dev"

var (
	configPath string
	jsonLogs   bool
	debugLogs  bool
)

var rootCmd = &cobra.Command{
	Use:   "hr-server",
	Short: "Candidate matching service over a knowledge graph",
	Long: "hr-server ingests CVs and interview evaluations, indexes them into " +
		"Memgraph and ranks candidates against skill and job-description queries.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default config/config.toml)")
	serveCmd.Flags().BoolVar(&jsonLogs, "json-logs", true, "emit logs as JSON")
	serveCmd.Flags().BoolVar(&debugLogs, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func serve(ctx context.Context) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, relying on the environment")
	}

	log, err := logger.New(jsonLogs, debugLogs)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, log)
	if err != nil {
		return fmt.Errorf("failed to connect to Memgraph at %s: %w", cfg.Memgraph.URI, err)
	}
	defer d.Close(ctx)

	llmClient, embedderClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open record store at %s: %w", cfg.Store.Path, err)
	}
	defer st.Close()

	svc := core.NewService(d, llmClient, embedderClient, st, log, cfg)
	if err := svc.BuildIndices(ctx); err != nil {
		log.Warn("failed to build graph indices", zap.Error(err))
	}

	r := server.NewServer(svc, log).SetupRouter()

	log.Info("starting hr-server",
		zap.String("port", cfg.Server.Port),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("memgraph_uri", cfg.Memgraph.URI))
	return r.Run(":" + cfg.Server.Port)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		// Missing implicit config is fine; a path the operator named is not.
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
