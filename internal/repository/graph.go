package repository

import "context"

// Record is one row of a graph query result.
type Record interface {
	Get(key string) (interface{}, bool)
}

// GraphExecutor runs read-only parameterized queries against the graph
// store. Implementations own connection management and retry transient
// failures transparently; callers never re-issue a failed query.
type GraphExecutor interface {
	RunQuery(ctx context.Context, query string, params map[string]interface{}) ([]Record, error)
	PlayerNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}
