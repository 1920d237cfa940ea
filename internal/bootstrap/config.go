package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/traveller42/moggy-go/internal/board"
)

type Config struct {
	BoardSize     int     `mapstructure:"size"`
	Playouts      int     `mapstructure:"playouts"`
	Workers       int     `mapstructure:"workers"`
	Seed          int64   `mapstructure:"seed"`
	Policy        string  `mapstructure:"policy"`
	Debug         int     `mapstructure:"debug"`
	Komi          float64 `mapstructure:"komi"`
	ProbHeuristic float64 `mapstructure:"prob-heuristic"`
	MaxMoves      int     `mapstructure:"max-moves"`
	Position      string  `mapstructure:"position"`
}

// Setup reads the configuration from command line arguments, MICHI_*
// environment variables and an optional config file, in that order of
// precedence.
func Setup(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("michi", pflag.ContinueOnError)
	cfgPath := fs.String("config", "", "configuration file (yaml, toml or json)")
	fs.Int("size", 13, "board size")
	fs.Int("playouts", 1400, "number of playouts")
	fs.Int("workers", 4, "concurrent playout workers")
	fs.Int64("seed", 0, "random seed; 0 seeds from the clock")
	fs.String("policy", "", "playout policy options, key[=value]:...")
	fs.Int("debug", 0, "policy debug level")
	fs.Float64("komi", 7.5, "komi")
	fs.Float64("prob-heuristic", 0.9, "probability of taking the policy's move")
	fs.Int("max-moves", 0, "playout length limit; 0 means three times the number of points")
	fs.String("position", "", "file with the starting position, one board row per line")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("MICHI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if *cfgPath != "" {
		v.SetConfigFile(*cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Position == "" && (cfg.BoardSize < 2 || cfg.BoardSize > board.MaxSize):
		return fmt.Errorf("board size %d out of range 2..%d", cfg.BoardSize, board.MaxSize)
	case cfg.Playouts < 0:
		return fmt.Errorf("invalid playout count %d", cfg.Playouts)
	case cfg.Workers < 1:
		return fmt.Errorf("invalid worker count %d", cfg.Workers)
	case cfg.ProbHeuristic < 0 || cfg.ProbHeuristic > 1:
		return fmt.Errorf("prob-heuristic %v out of range 0..1", cfg.ProbHeuristic)
	}
	return nil
}

// Board returns the starting position: the position file if one is
// configured, an empty board otherwise.
func (cfg *Config) Board() (*board.Board, error) {
	if cfg.Position == "" {
		return board.New(cfg.BoardSize), nil
	}
	data, err := os.ReadFile(cfg.Position)
	if err != nil {
		return nil, err
	}
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	b, err := board.Parse(rows...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Position, err)
	}
	return b, nil
}
