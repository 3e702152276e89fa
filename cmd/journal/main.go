package main

import (
	"fmt"
	"os"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/cli"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/config"
	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/logging"
)

func main() {
	// The config flag has to be read before cobra parses anything because
	// the command tree is wired from the loaded config.
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if apperrors.Is(err, apperrors.ErrInsufficientCredits) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
