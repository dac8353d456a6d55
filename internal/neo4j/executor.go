package neo4j

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"statchat-backend/config"
	"statchat-backend/internal/repository"
)

// ProvideDriver opens the Neo4j driver, verifies connectivity with
// exponential backoff, and closes it on shutdown.
func ProvideDriver(lc fx.Lifecycle, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4j.URI,
		neo4j.BasicAuth(cfg.Neo4j.Username, cfg.Neo4j.Password, ""))
	if err != nil {
		log.Error().Err(err).Str("uri", cfg.Neo4j.URI).Msg("Failed to create Neo4j driver")
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	connectBackoff := backoff.NewExponentialBackOff()
	connectBackoff.MaxElapsedTime = cfg.Neo4j.ConnectTimeout
	operation := func() error {
		verifyCtx, cancel := context.WithTimeout(context.Background(), cfg.Neo4j.ConnectTimeout)
		defer cancel()
		return driver.VerifyConnectivity(verifyCtx)
	}
	if err := backoff.Retry(operation, connectBackoff); err != nil {
		log.Error().Err(err).Str("uri", cfg.Neo4j.URI).Msg("Failed to verify Neo4j connectivity")
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Neo4j driver")
			return driver.Close(ctx)
		},
	})

	log.Info().Str("uri", cfg.Neo4j.URI).Msg("Neo4j driver connected and verified")
	return driver, nil
}

// graphExecutor runs read-only Cypher with bounded exponential-backoff
// retries on transient failures. Callers never re-issue a failed query.
type graphExecutor struct {
	driver     neo4j.DriverWithContext
	database   string
	maxRetries uint64
}

func NewGraphExecutor(driver neo4j.DriverWithContext, cfg *config.Config) repository.GraphExecutor {
	return &graphExecutor{
		driver:     driver,
		database:   cfg.Neo4j.Database,
		maxRetries: cfg.Neo4j.MaxRetries,
	}
}

func (e *graphExecutor) RunQuery(ctx context.Context, query string, params map[string]interface{}) ([]repository.Record, error) {
	var records []repository.Record

	operation := func() error {
		session := e.driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeRead,
			DatabaseName: e.database,
		})
		defer session.Close(ctx)

		result, err := session.Run(ctx, query, params)
		if err != nil {
			return err
		}
		collected, err := result.Collect(ctx)
		if err != nil {
			return err
		}

		records = records[:0]
		for _, rec := range collected {
			records = append(records, rec)
		}
		return nil
	}

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), e.maxRetries), ctx)
	if err := backoff.Retry(operation, retryBackoff); err != nil {
		log.Error().Err(err).Str("query", query).Msg("Graph query failed after retries")
		return nil, fmt.Errorf("graph query failed: %w", err)
	}

	log.Debug().Str("query", query).Int("records", len(records)).Msg("Graph query executed")
	return records, nil
}

// PlayerNames loads the subject-name reference list.
func (e *graphExecutor) PlayerNames(ctx context.Context) ([]string, error) {
	records, err := e.RunQuery(ctx, "MATCH (p:Player) RETURN p.name AS name ORDER BY name", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load player names: %w", err)
	}

	names := make([]string, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Get("name"); ok {
			if name, ok := v.(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (e *graphExecutor) Ping(ctx context.Context) error {
	return e.driver.VerifyConnectivity(ctx)
}
