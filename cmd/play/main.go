package main

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/internal/transport/terminal"
	"github.com/iamasit07/connect4-minimax/pkg/logger"
)

func main() {
	godotenv.Load()

	cfg := config.LoadConfig()

	// the terminal owns stdout and stderr, so only log to a file
	logg := zap.NewNop().Sugar()
	if cfg.LogFile != "" {
		l, err := logger.New(cfg.Environment, cfg.LogFile)
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
		defer l.Sync()
		logg = l
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialise terminal: %v", err)
	}
	defer screen.Fini()

	engine := bot.NewEngine(bot.DepthForDifficulty(cfg.Difficulty, cfg.SearchDepth), bot.HeuristicByName(cfg.Heuristic))
	ui := terminal.NewUI(screen, engine, terminal.Options{
		BotName:       domain.GetBotName(cfg.Difficulty),
		BotMoveDelay:  cfg.BotMoveDelay,
		SearchTimeout: cfg.SearchTimeout,
	}, logg)

	if err := ui.Run(); err != nil {
		screen.Fini()
		log.Fatalf("Game error: %v", err)
	}
}
