// Package cli wires the raincast commands.
package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the raincast command tree.
func NewRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "raincast",
		Short:         "Rainfall prediction service and client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(".env"); err != nil {
				return err
			}
			initLogging()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to raincast.yaml (default $RAINCAST_CONFIG)")

	cmd.AddCommand(newServerCmd(&configPath))
	cmd.AddCommand(newPredictCmd(defaultCommandDeps()))
	cmd.AddCommand(newSignupCmd(defaultCommandDeps()))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the command line with ctx cancelled on shutdown signals.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// loadDotEnv loads path into the environment. Existing variables win and a
// missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("RAINCAST_LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func configPathOrEnv(path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	return os.Getenv("RAINCAST_CONFIG")
}
