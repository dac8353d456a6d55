package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"statchat-backend/config"
	"statchat-backend/internal/analyzer"
	"statchat-backend/internal/catalog"
	"statchat-backend/internal/dto"
	"statchat-backend/internal/kafka"
	"statchat-backend/internal/model"
	"statchat-backend/internal/query"
	"statchat-backend/internal/repository"
	"statchat-backend/internal/responder"
	"statchat-backend/internal/util"
)

const (
	clarificationAnswer = "I couldn't understand that. Try asking about a specific stat, like goals or appearances."
	failureAnswer       = "Something went wrong answering that. Please try again."
)

type ChatbotService interface {
	ProcessQuestion(ctx context.Context, req dto.ChatQueryRequest) *dto.ChatbotResponse
	ProcessingDetails() dto.ProcessingDetails
}

// chatbotService sequences analyzer, query builder, graph execution and
// responder. All per-request state is call-local; the only shared mutable
// fields are the last-analysis/last-queries debug slots, which are
// last-writer-wins and must not be relied upon under concurrent load.
type chatbotService struct {
	analyzer    *analyzer.Analyzer
	builder     *query.Builder
	responder   *responder.Responder
	catalog     *catalog.Catalog
	graph       repository.GraphExecutor
	questionLog repository.QuestionLog
	events      kafka.EventProducer
	debug       bool

	lastAnalysis *model.QuestionAnalysis
	lastQueries  []dto.QueryDebug
}

func NewChatbotService(
	cfg *config.Config,
	questionAnalyzer *analyzer.Analyzer,
	builder *query.Builder,
	resp *responder.Responder,
	cat *catalog.Catalog,
	graph repository.GraphExecutor,
	questionLog repository.QuestionLog,
	events kafka.EventProducer,
) ChatbotService {
	return &chatbotService{
		analyzer:    questionAnalyzer,
		builder:     builder,
		responder:   resp,
		catalog:     cat,
		graph:       graph,
		questionLog: questionLog,
		events:      events,
		debug:       cfg.Debug,
	}
}

func (s *chatbotService) ProcessQuestion(ctx context.Context, req dto.ChatQueryRequest) *dto.ChatbotResponse {
	start := time.Now()

	qc := model.QuestionContext{Question: req.Question}
	if req.UserContext != nil {
		qc.UserContext = *req.UserContext
	}

	analysis := s.analyzer.Analyze(qc)
	s.lastAnalysis = &analysis
	s.lastQueries = nil

	resp := s.answer(ctx, analysis)
	if s.debug {
		resp.Debug = &dto.DebugInfo{Analysis: &analysis, Queries: s.lastQueries}
	}

	s.record(ctx, req.Question, analysis, resp, time.Since(start))
	return resp
}

// ProcessingDetails exposes the most recent request's analysis and query
// list for introspection and tests.
func (s *chatbotService) ProcessingDetails() dto.ProcessingDetails {
	return dto.ProcessingDetails{Analysis: s.lastAnalysis, Queries: s.lastQueries}
}

func (s *chatbotService) answer(ctx context.Context, analysis model.QuestionAnalysis) *dto.ChatbotResponse {
	if len(analysis.Metrics) == 0 {
		return &dto.ChatbotResponse{Answer: clarificationAnswer, Confidence: 0.3}
	}

	if analysis.Type == model.SubjectUnknown {
		if name := analysis.UnresolvedSubject; name != "" {
			return &dto.ChatbotResponse{
				Answer:     fmt.Sprintf("I couldn't find %s in the stats.", name),
				Confidence: 0.4,
			}
		}
		return &dto.ChatbotResponse{Answer: clarificationAnswer, Confidence: 0.3}
	}

	queries := s.builder.Build(analysis)
	s.lastQueries = queryDebug(queries)
	if len(queries) == 0 {
		return &dto.ChatbotResponse{Answer: clarificationAnswer, Confidence: 0.3}
	}

	subject := displaySubject(analysis)
	sentences := make([]string, 0, len(queries))
	values := make([]float64, 0, len(queries))

	for _, q := range queries {
		records, err := s.graph.RunQuery(ctx, q.Cypher, q.Params)
		if err != nil {
			log.Error().Err(err).Str("metric", q.Metric).Msg("Graph query failed")
			return &dto.ChatbotResponse{Answer: failureAnswer, Confidence: 0}
		}

		result := extractResult(records)
		sentences = append(sentences, s.responder.Build(subject, q.Metric, result, analysis))
		values = append(values, toFloat(result.Value))
	}

	resp := &dto.ChatbotResponse{
		Answer:     strings.Join(sentences, " "),
		Confidence: 1.0,
	}
	if len(queries) > 1 {
		resp.Visualization = s.visualization(queries, values)
	}
	return resp
}

// record persists and emits the processed question. Both sinks are
// best-effort; failures are logged and never surface to the caller.
func (s *chatbotService) record(ctx context.Context, question string, analysis model.QuestionAnalysis, resp *dto.ChatbotResponse, latency time.Duration) {
	id := uuid.NewString()
	askedAt := time.Now().UTC()
	latencyMS := latency.Milliseconds()

	if s.questionLog != nil {
		entry := model.QuestionLogEntry{
			ID:         id,
			Question:   question,
			Subject:    analysis.Subject(),
			Metrics:    analysis.Metrics,
			Answer:     resp.Answer,
			Confidence: resp.Confidence,
			LatencyMS:  latencyMS,
			AskedAt:    askedAt,
		}
		if err := s.questionLog.Insert(ctx, entry); err != nil {
			log.Warn().Err(err).Msg("Failed to persist question log entry")
		}
	}

	if s.events != nil {
		event := model.QuestionEvent{
			ID:         id,
			Question:   question,
			Subject:    analysis.Subject(),
			Metrics:    analysis.Metrics,
			Answered:   resp.Confidence >= 1.0,
			Confidence: resp.Confidence,
			AskedAt:    askedAt,
			LatencyMS:  latencyMS,
		}
		if err := s.events.Emit(ctx, event); err != nil {
			log.Warn().Err(err).Msg("Failed to emit question event")
		}
	}
}

func (s *chatbotService) visualization(queries []query.GraphQuery, values []float64) *dto.Visualization {
	data := make([][]interface{}, 0, len(queries))
	for i, q := range queries {
		name := q.Metric
		if def, ok := s.catalog.Resolve(q.Metric); ok {
			name = def.Plural
		}
		data = append(data, []interface{}{name, values[i]})
	}
	return &dto.Visualization{
		Type: "bar",
		Data: data,
		Config: map[string]any{
			"x": "metric",
			"y": "value",
		},
	}
}

func displaySubject(analysis model.QuestionAnalysis) string {
	switch analysis.Type {
	case model.SubjectTeam:
		return "The " + util.DisplaySquad(analysis.Subject())
	case model.SubjectClub:
		return "The club"
	default:
		return analysis.Subject()
	}
}

// extractResult reads the "value" and optional "appearances" projections
// from the first record. No rows means a zero result, not an error.
func extractResult(records []repository.Record) responder.Result {
	if len(records) == 0 {
		return responder.Result{Value: int64(0)}
	}
	result := responder.Result{Value: int64(0)}
	if v, ok := records[0].Get("value"); ok && v != nil {
		result.Value = v
	}
	if v, ok := records[0].Get("appearances"); ok && v != nil {
		if apps, ok := v.(int64); ok {
			result.Appearances = &apps
		}
	}
	return result
}

func queryDebug(queries []query.GraphQuery) []dto.QueryDebug {
	out := make([]dto.QueryDebug, 0, len(queries))
	for _, q := range queries {
		out = append(out, dto.QueryDebug{
			Metric: q.Metric,
			Cypher: q.Cypher,
			Params: scrubParams(q.Params),
		})
	}
	return out
}

// scrubParams drops anything that looks like a credential or connection
// string before it can reach the debug surface.
func scrubParams(params map[string]interface{}) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		lowered := strings.ToLower(k)
		if strings.Contains(lowered, "pass") || strings.Contains(lowered, "secret") || strings.Contains(lowered, "dsn") {
			continue
		}
		if s, ok := v.(string); ok && strings.Contains(s, "://") {
			continue
		}
		out[k] = v
	}
	return out
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case int64:
		return float64(value)
	case int:
		return float64(value)
	case float64:
		return value
	}
	return 0
}
