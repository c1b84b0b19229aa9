package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"intel-terminal/internal/cli"
	"intel-terminal/internal/config"
	"intel-terminal/internal/logging"
)

func main() {
	// Optional .env for INSIDER_API_KEY and friends. Absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDir resolves the config directory before cobra parses flags, so
// the loaded config can shape the command tree itself.
func configDir() string {
	for i, arg := range os.Args[1:] {
		if arg == "--config" && i+2 < len(os.Args) {
			return os.Args[i+2]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	if dir := os.Getenv("TERMINAL_CONFIG_DIR"); dir != "" {
		return dir
	}
	return config.DefaultConfigDir()
}
