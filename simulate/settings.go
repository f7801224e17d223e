package simulate

import (
	"context"

	"github.com/alexander-jiang/riichi-bot/config"
	"github.com/alexander-jiang/riichi-bot/log"
	"github.com/alexander-jiang/riichi-bot/mahjong"
)

// FromSettings converts file/env-driven SimulatorSettings into Options,
// parsing the MSPZ hand and visible strings. Policy and Notifier stay
// nil (the defaults); a caller wanting a NatsNotifier builds one from
// the settings' nats section and owns its connection.
func FromSettings(cfg *config.SimulatorSettings) (Options, error) {
	hand, err := mahjong.ParseMSPZ(cfg.Simulation.Hand)
	if err != nil {
		return Options{}, err
	}
	var visible mahjong.CountArray
	if cfg.Simulation.Visible != "" {
		visible, err = mahjong.ParseMSPZ(cfg.Simulation.Visible)
		if err != nil {
			return Options{}, err
		}
	}
	return Options{
		Hand:     hand,
		Visible:  visible,
		MaxDraws: cfg.Simulation.MaxDraws,
		Trials:   cfg.Simulation.Trials,
		Seed:     cfg.Simulation.Seed,
		Shards:   cfg.Simulation.Shards,
	}, nil
}

// RunFromSettings is the convenience entry point for settings-driven
// batches: it applies the settings' log level and runs the batch with
// the default policy and notifier.
func RunFromSettings(ctx context.Context, cfg *config.SimulatorSettings) (Result, error) {
	log.Init(cfg.AppName, cfg.Log.Level)
	opts, err := FromSettings(cfg)
	if err != nil {
		return Result{}, err
	}
	return Run(ctx, opts)
}
