// Package config loads SimulatorSettings from a YAML/JSON file via
// viper, with environment-variable override and optional hot-reload.
// It is a caller convenience only: every simulator entry point also
// accepts a literal Options struct, so nothing in the library requires
// a config file to exist.
package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SimulatorSettings is the file/env-driven bundle a Monte-Carlo batch
// can be launched from. Hand and Visible are MSPZ shorthand strings;
// simulate.FromSettings parses and validates them.
type SimulatorSettings struct {
	AppName    string         `mapstructure:"appName"`
	Log        LogConf        `mapstructure:"log"`
	Simulation SimulationConf `mapstructure:"simulation"`
	Nats       NatsConf       `mapstructure:"nats"`
	Redis      RedisConf      `mapstructure:"redis"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type SimulationConf struct {
	Hand     string `mapstructure:"hand"`
	Visible  string `mapstructure:"visible"`
	Trials   int    `mapstructure:"trials"`
	MaxDraws int    `mapstructure:"maxDraws"`
	Seed     int64  `mapstructure:"seed"`
	Shards   int    `mapstructure:"shards"` // 0 = one per logical CPU
}

type NatsConf struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	TTLSeconds   int    `mapstructure:"ttlSeconds"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("appName", "riichi-bot")
	v.SetDefault("log.level", "info")
	v.SetDefault("simulation.trials", 100000)
	v.SetDefault("simulation.maxDraws", 12)
	v.SetDefault("simulation.shards", 0)
	v.SetDefault("nats.subject", "riichi.simulate.progress")
	return v
}

func unmarshal(v *viper.Viper) (*SimulatorSettings, error) {
	cfg := new(SimulatorSettings)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configFile once and returns the resulting settings.
func Load(configFile string) (*SimulatorSettings, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// Watch reads configFile, starts watching it for changes, and invokes
// onChange with the freshly unmarshalled settings on every rewrite. A
// rewrite that fails to unmarshal keeps the previous settings in force
// and does not invoke onChange. The initial settings are returned
// directly.
func Watch(configFile string, onChange func(*SimulatorSettings)) (*SimulatorSettings, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	initial, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		cfg, err := unmarshal(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return initial, nil
}
