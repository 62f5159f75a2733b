package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonpilot/carbonpilot/internal/config"
	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// Environment variables overriding the default logging configuration.
const (
	envLogLevel  = "CARBONPILOT_LOG_LEVEL"
	envLogFormat = "CARBONPILOT_LOG_FORMAT"
)

// setupLogging configures logging based on the config file, environment
// variables and CLI flags, and attaches the logger to the command context.
// Flags win over the environment, the environment wins over the file;
// --debug wins over everything.
func setupLogging(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg := fileCfg.Logging

	if envLevel := os.Getenv(envLogLevel); envLevel != "" {
		cfg.Level = envLevel
	}
	if envFormat := os.Getenv(envLogFormat); envFormat != "" {
		cfg.Format = envFormat
	}

	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Format = format
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Level = "debug"
		cfg.Format = "console"
	}

	base := logging.New(cfg, cmd.ErrOrStderr())
	logger = logging.ComponentLogger(base, "cli")

	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}
