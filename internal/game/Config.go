package game

import (
	"os"
	"strconv"
	"time"
)

const (
	GameTickDuration = 100 * time.Millisecond
	// AnchorLeft and AnchorTop place the play area inside the console canvas.
	AnchorLeft = 36
	AnchorTop  = 7

	MapDataDir         = "MapData"
	MapFileExtension   = ".txt"
	MaxFeedsOnMap      = 3
	DefaultSpawnMillis = 1000

	WallColor  = "172"
	SnakeColor = "87"
	HeadColor  = "51"
	FeedColor  = "205"

	WallIcon  = "▒"
	BodyIcon  = "○"
	FeedIcon  = "F"
	FloorIcon = " "
)

// Config holds the settings read from the environment. Commands override
// individual fields from their flags.
type Config struct {
	ResourcePath   string
	DatabasePath   string
	LogLevel       string
	Muted          bool
	PrivateKeyPath string
}

func DefaultConfig() Config {
	return Config{
		ResourcePath:   "resources",
		DatabasePath:   "highscores.db",
		LogLevel:       "info",
		Muted:          false,
		PrivateKeyPath: ".ssh/snake_ed25519",
	}
}

// LoadConfig starts from DefaultConfig and applies the SNAKE_* variables.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("SNAKE_RESOURCE_PATH"); ok && v != "" {
		cfg.ResourcePath = v
	}
	if v, ok := os.LookupEnv("SNAKE_DB_PATH"); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("SNAKE_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("SNAKE_MUTE"); ok {
		if muted, err := strconv.ParseBool(v); err == nil {
			cfg.Muted = muted
		}
	}
	if v, ok := os.LookupEnv("SNAKE_PRIVATE_KEY_PATH"); ok && v != "" {
		cfg.PrivateKeyPath = v
	}

	return cfg
}
