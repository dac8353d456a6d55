package model

import "time"

// QuestionEvent is the usage event emitted per processed question.
type QuestionEvent struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Subject    string    `json:"subject,omitempty"`
	Metrics    []string  `json:"metrics,omitempty"`
	Answered   bool      `json:"answered"`
	Confidence float64   `json:"confidence"`
	AskedAt    time.Time `json:"asked_at"`
	LatencyMS  int64     `json:"latency_ms"`
}

// QuestionLogEntry is the row persisted to the question log.
type QuestionLogEntry struct {
	ID         string
	Question   string
	Subject    string
	Metrics    []string
	Answer     string
	Confidence float64
	LatencyMS  int64
	AskedAt    time.Time
}
