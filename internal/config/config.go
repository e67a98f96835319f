// Package config loads the server's configuration via viper, the way
// common/config/app_config.go composes a mapstructure-tagged struct
// from a config file with flag/env overrides and a live fsnotify watch.
// Unlike the teacher's per-service config (database/JWT/etcd/NATS
// sections), this module's ambient concerns are limited to listen
// address, table rules, and observability ports — there is no
// persistence or discovery layer to configure.
package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"mahjongcore/internal/mjlog"
)

// LogConf mirrors the teacher's embedded LogConf section.
type LogConf struct {
	Level string `mapstructure:"level"`
}

// TableConf holds the game-shape settings spec §6 exposes as CLI
// prompts; a config file or flags may supply them instead. A
// NumPlayers of 0 means unset and leads to the player-count prompt.
// IncludeHonors cannot be told apart from unset, so without --honors
// the honors prompt is skipped only when the config file sets
// num_players; an include_honors value alone does not skip it.
type TableConf struct {
	NumPlayers    int  `mapstructure:"num_players"`
	IncludeHonors bool `mapstructure:"include_honors"`
}

// Config is the process-wide configuration root.
type Config struct {
	ListenAddr string  `mapstructure:"listen_addr"`
	MetricAddr string  `mapstructure:"metric_addr"`
	Log        LogConf `mapstructure:"log"`
	Table      TableConf
}

// Conf is the loaded configuration, populated by Load. Matches the
// teacher's pattern of a package-level *Config singleton
// (ConnectorConfig, GameNodeConfig, etc.) rather than threading a
// config value through every constructor.
var Conf = &Config{
	ListenAddr: ":9876",
	MetricAddr: "",
	Log:        LogConf{Level: "info"},
	Table:      TableConf{NumPlayers: 0, IncludeHonors: true},
}

// Load reads path (if non-empty) into Conf and watches it for changes,
// the same viper+fsnotify wiring the teacher's AppConfig uses. A
// missing path is not an error: flags/CLI prompts fill in the rest.
func Load(path string) error {
	if path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(Conf); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		mjlog.Info("config file changed, reloading", "event", e.String())
		if err := v.Unmarshal(Conf); err != nil {
			mjlog.Error("config reload failed", "err", err)
		}
	})
	return nil
}
