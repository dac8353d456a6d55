package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"statchat-backend/config"
	"statchat-backend/internal/model"
	"statchat-backend/internal/repository"
)

const questionLogTable = "chat_question_log"

const createQuestionLogSQL = `
CREATE TABLE IF NOT EXISTS ` + questionLogTable + ` (
	id          uuid PRIMARY KEY,
	question    text NOT NULL,
	subject     text,
	metrics     text[],
	answer      text NOT NULL,
	confidence  double precision NOT NULL,
	latency_ms  bigint NOT NULL,
	asked_at    timestamptz NOT NULL
)`

type questionLogRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionLog connects the Postgres question log, or returns a no-op
// repository when no DSN is configured.
func NewQuestionLog(lc fx.Lifecycle, cfg *config.Config) (repository.QuestionLog, error) {
	if cfg.QuestionLog.DSN == "" {
		log.Info().Msg("Question log DSN not configured, persistence disabled")
		return noopQuestionLog{}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.QuestionLog.DSN)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse question log DSN")
		return nil, fmt.Errorf("invalid question log DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create question log connection pool")
		return nil, fmt.Errorf("failed to connect question log: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Error().Err(err).Msg("Failed to ping question log database")
		return nil, fmt.Errorf("failed to ping question log database: %w", err)
	}

	if _, err := pool.Exec(context.Background(), createQuestionLogSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure question log table: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing question log connection pool")
			pool.Close()
			return nil
		},
	})

	log.Info().Msg("Question log connection pool created and verified")
	return &questionLogRepository{pool: pool}, nil
}

func (r *questionLogRepository) Insert(ctx context.Context, entry model.QuestionLogEntry) error {
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (id, question, subject, metrics, answer, confidence, latency_ms, asked_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		questionLogTable,
	)
	_, err := r.pool.Exec(ctx, insertSQL,
		entry.ID, entry.Question, entry.Subject, entry.Metrics,
		entry.Answer, entry.Confidence, entry.LatencyMS, entry.AskedAt)
	if err != nil {
		log.Error().Err(err).Str("id", entry.ID).Msg("Failed to insert question log entry")
		return fmt.Errorf("question log insert failed: %w", err)
	}
	return nil
}

type noopQuestionLog struct{}

func (noopQuestionLog) Insert(context.Context, model.QuestionLogEntry) error { return nil }
