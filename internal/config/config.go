package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the game server.
type Server struct {
	ListenAddr string `yaml:"listen_addr"`
	// debug, info, warn or error
	LogLevel string `yaml:"log_level"`

	// Out of 256: a step in herbs starts a wild fight when a random byte
	// falls below it.
	EncounterRate uint8 `yaml:"encounter_rate"`

	Save Save `yaml:"save"`

	// Starter is given to every new player.
	Starter Starter `yaml:"starter"`
}

// Save selects where progress is kept.
type Save struct {
	// file, sqlite or postgres
	Driver string `yaml:"driver"`
	// Directory for file, database file for sqlite.
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

// Target returns what the save driver opens.
func (s Save) Target() string {
	if s.Driver == "postgres" {
		return s.DSN
	}
	return s.Path
}

// Starter points at a creature of the Dex.
type Starter struct {
	SpeciesID    int    `yaml:"species_id"`
	IndividualID int    `yaml:"individual_id"`
	Surname      string `yaml:"surname"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		ListenAddr:    ":8080",
		LogLevel:      "info",
		EncounterRate: 64,
		Save: Save{
			Driver: "file",
			Path:   "saves",
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Server) validate() error {
	switch c.Save.Driver {
	case "file", "sqlite":
	case "postgres":
		if c.Save.DSN == "" {
			return fmt.Errorf("save.dsn is required with the postgres driver")
		}
	default:
		return fmt.Errorf("unknown save.driver %q", c.Save.Driver)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
