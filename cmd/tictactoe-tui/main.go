// tictactoe-tui plays the game in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/config"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/domain"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/logging"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/tui"
)

var flagConfig = flag.String("config", "", "path to config.yml (default: search XDG config dirs)")

func main() {
	flag.Parse()

	conf, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logPath, err := xdg.StateFile("tictactoe/tui.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.NewFile(conf.LogLevel, logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting terminal game", zap.String("log", logPath))
	if err := tui.NewApp(domain.New()).Run(); err != nil {
		logger.Error("terminal app failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
