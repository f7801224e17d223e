package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ReadsAllSections(t *testing.T) {
	path := writeConfig(t, `
appName: riichi-sim
log:
  level: debug
simulation:
  hand: "345m1156466778s"
  visible: "19m19p"
  trials: 5000
  maxDraws: 18
  seed: 9
  shards: 2
nats:
  url: nats://127.0.0.1:4222
  subject: riichi.progress
redis:
  addr: 127.0.0.1:6379
  ttlSeconds: 600
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "riichi-sim", cfg.AppName)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "345m1156466778s", cfg.Simulation.Hand)
	require.Equal(t, "19m19p", cfg.Simulation.Visible)
	require.Equal(t, 5000, cfg.Simulation.Trials)
	require.Equal(t, 18, cfg.Simulation.MaxDraws)
	require.Equal(t, int64(9), cfg.Simulation.Seed)
	require.Equal(t, 2, cfg.Simulation.Shards)
	require.Equal(t, "nats://127.0.0.1:4222", cfg.Nats.URL)
	require.Equal(t, "riichi.progress", cfg.Nats.Subject)
	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, 600, cfg.Redis.TTLSeconds)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation:
  hand: "123456789m11p29s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "riichi-bot", cfg.AppName)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 100000, cfg.Simulation.Trials)
	require.Equal(t, 12, cfg.Simulation.MaxDraws)
	require.Equal(t, 0, cfg.Simulation.Shards)
	require.Equal(t, "riichi.simulate.progress", cfg.Nats.Subject)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestWatch_ReturnsInitialSettings(t *testing.T) {
	path := writeConfig(t, `
simulation:
  hand: "123456789m11p29s"
  trials: 42
`)
	cfg, err := Watch(path, func(*SimulatorSettings) {})
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Simulation.Trials)
}
