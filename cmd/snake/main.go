package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Mshel/stagesnake/internal/audio"
	"github.com/Mshel/stagesnake/internal/game"
	"github.com/Mshel/stagesnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg := game.LoadConfig()

	flag.StringVar(&cfg.ResourcePath, "resources", cfg.ResourcePath, "directory holding "+game.MapDataDir+"/")
	flag.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite file for run history, empty to disable")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.BoolVar(&cfg.Muted, "mute", cfg.Muted, "disable sound")
	stages := flag.String("stages", "Stage1,Stage2,Stage3", "comma separated stage names in play order")
	autopilot := flag.String("autopilot", "", `"`+game.GreedyAutopilotName+`" or a lua script path`)
	logPath := flag.String("log", "snake.log", "log file, the terminal belongs to the game")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	setupLogging(logFile, cfg.LogLevel)

	scenes, err := game.DefaultScenes(splitStages(*stages))
	if err != nil {
		log.Fatal("Invalid stage list", "error", err)
	}
	data := game.NewDataManager(cfg.ResourcePath)
	if err := data.LoadScenes(scenes); err != nil {
		log.Fatal("Failed to load map data", "resources", cfg.ResourcePath, "error", err)
	}

	sound := audio.NewSoundManager(cfg.Muted)
	if err := sound.Initialize(); err != nil {
		log.Warn("Sound disabled", "error", err)
	}
	defer sound.Cleanup()

	opts := []game.Option{game.WithSound(sound)}

	if cfg.DatabasePath != "" {
		scores, err := game.NewHighScoreService(cfg.DatabasePath)
		if err != nil {
			log.Fatal("Failed to open run history", "db", cfg.DatabasePath, "error", err)
		}
		defer scores.Close()
		opts = append(opts, game.WithScores(scores))
	}

	pilot, err := game.ResolveAutopilot(*autopilot)
	if err != nil {
		log.Fatal("Failed to load autopilot", "autopilot", *autopilot, "error", err)
	}
	if pilot != nil {
		if lua, ok := pilot.(*game.LuaAutopilot); ok {
			defer lua.Close()
		}
		opts = append(opts, game.WithStageAutopilot(pilot))
	}

	gameManager := game.NewGameManager(scenes, data, opts...)
	log.Info("Starting game", "stages", data.StageNames(), "autopilot", *autopilot)

	p := tea.NewProgram(ui.NewControllerModel(gameManager, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, level string) {
	log.SetOutput(w)
	log.SetReportTimestamp(true)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func splitStages(list string) []string {
	names := []string{}
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
