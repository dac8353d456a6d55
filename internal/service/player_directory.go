package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"statchat-backend/internal/repository"
)

// PlayerDirectory caches the known player names. Populated once at
// startup and treated as immutable afterwards; there is no refresh path
// by design, the name list is config-time data.
type PlayerDirectory struct {
	graph repository.GraphExecutor
	names []string
}

func NewPlayerDirectory(lc fx.Lifecycle, graph repository.GraphExecutor) *PlayerDirectory {
	d := &PlayerDirectory{graph: graph}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return d.load(ctx)
		},
	})
	return d
}

func (d *PlayerDirectory) load(ctx context.Context) error {
	names, err := d.graph.PlayerNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load player directory")
		return err
	}
	d.names = names
	log.Info().Int("count", len(names)).Msg("Player directory loaded")
	return nil
}

// PlayerNames implements analyzer.SubjectSource.
func (d *PlayerDirectory) PlayerNames() []string {
	return d.names
}
