package main

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the job posting endpoints.

Settings come from the environment (DATABASE_URL, PORT, LOG_LEVEL, LOG_FORMAT,
JWT_SECRET). A JSON or TOML file given with --config overrides the environment, and
--port overrides both.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON or TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(serveConfig, servePort, cmd.Flags().Changed("port"))
	if err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Debug().
		Int("port", cfg.Port).
		Str("config_file", serveConfig).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadServeConfig layers defaults, environment, config file and the port flag.
func loadServeConfig(path string, port int, portSet bool) (*config.Config, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := *envCfg
	if path != "" {
		fileCfg, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.Merge(cfg)
	}
	if portSet {
		cfg.Port = port
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
