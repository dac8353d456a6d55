package dto

import "statchat-backend/internal/model"

type ChatQueryRequest struct {
	Question    string  `json:"question" binding:"required"`
	UserContext *string `json:"userContext,omitempty"`
}

// Visualization carries optional chart data for comparative questions.
type Visualization struct {
	Type   string          `json:"type"`
	Data   [][]interface{} `json:"data"`
	Config map[string]any  `json:"config,omitempty"`
}

// QueryDebug is one executed query as exposed through the debug surface.
type QueryDebug struct {
	Metric string         `json:"metric"`
	Cypher string         `json:"cypher"`
	Params map[string]any `json:"params,omitempty"`
}

// DebugInfo is only populated when the debug flag is active. It must never
// carry connection strings, stack traces or raw error text.
type DebugInfo struct {
	Analysis *model.QuestionAnalysis `json:"analysis,omitempty"`
	Queries  []QueryDebug            `json:"queries,omitempty"`
}

type ChatbotResponse struct {
	Answer        string         `json:"answer"`
	Confidence    float64        `json:"confidence"`
	Visualization *Visualization `json:"visualization,omitempty"`
	Debug         *DebugInfo     `json:"debug,omitempty"`
}

// ProcessingDetails exposes the most recent request's analysis and queries
// for introspection. Last-writer-wins under concurrent load.
type ProcessingDetails struct {
	Analysis *model.QuestionAnalysis `json:"analysis,omitempty"`
	Queries  []QueryDebug            `json:"queries,omitempty"`
}
