package repository

import (
	"context"

	"statchat-backend/internal/model"
)

// QuestionLog persists processed questions for offline analysis. Writes
// are best-effort: a failed insert never fails the request.
type QuestionLog interface {
	Insert(ctx context.Context, entry model.QuestionLogEntry) error
}
