package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statchat-backend/config"
	"statchat-backend/internal/analyzer"
	"statchat-backend/internal/catalog"
	"statchat-backend/internal/dto"
	"statchat-backend/internal/query"
	"statchat-backend/internal/repository"
	"statchat-backend/internal/responder"
	"statchat-backend/internal/service"
)

type stubSubjects struct{ names []string }

func (s stubSubjects) PlayerNames() []string { return s.names }

type mapRecord map[string]interface{}

func (r mapRecord) Get(key string) (interface{}, bool) {
	v, ok := r[key]
	return v, ok
}

// fakeGraph answers every query through runFn and counts invocations.
type fakeGraph struct {
	runFn func(cypher string, params map[string]interface{}) ([]repository.Record, error)
	calls int
}

func (g *fakeGraph) RunQuery(_ context.Context, cypher string, params map[string]interface{}) ([]repository.Record, error) {
	g.calls++
	return g.runFn(cypher, params)
}

func (g *fakeGraph) PlayerNames(context.Context) ([]string, error) { return nil, nil }
func (g *fakeGraph) Ping(context.Context) error                    { return nil }

func newService(graph *fakeGraph) service.ChatbotService {
	cat := catalog.NewCatalog()
	return service.NewChatbotService(
		&config.Config{Debug: true},
		analyzer.NewAnalyzer(cat, stubSubjects{names: []string{"Luke Bangs", "Tom Cowell"}}),
		query.NewBuilder(cat),
		responder.NewResponder(cat, catalog.NewZeroRuleEngine()),
		cat,
		graph,
		nil,
		nil,
	)
}

func singleResult(values map[string]interface{}) *fakeGraph {
	return &fakeGraph{runFn: func(string, map[string]interface{}) ([]repository.Record, error) {
		return []repository.Record{mapRecord(values)}, nil
	}}
}

func ask(t *testing.T, svc service.ChatbotService, question string) *dto.ChatbotResponse {
	t.Helper()
	resp := svc.ProcessQuestion(context.Background(), dto.ChatQueryRequest{Question: question})
	require.NotNil(t, resp)
	return resp
}

func TestProcessQuestion_GoalsWithAppearanceContext(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{
		"value": int64(29), "appearances": int64(78),
	}))

	resp := ask(t, svc, "How many goals has Luke Bangs scored?")

	assert.Equal(t, "Luke Bangs has scored 29 goals in 78 appearances.", resp.Answer)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Nil(t, resp.Visualization)
}

func TestProcessQuestion_Assists(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{
		"value": int64(7), "appearances": int64(52),
	}))

	resp := ask(t, svc, "How many assists does Luke Bangs have?")

	assert.Equal(t, "Luke Bangs has provided 7 assists in 52 appearances.", resp.Answer)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestProcessQuestion_UnknownSubject(t *testing.T) {
	graph := singleResult(map[string]interface{}{"value": int64(3)})
	svc := newService(graph)

	resp := ask(t, svc, "How many goals has Unknown Player scored?")

	assert.Equal(t, "I couldn't find Unknown Player in the stats.", resp.Answer)
	assert.Equal(t, 0.4, resp.Confidence)
	assert.Zero(t, graph.calls)
}

func TestProcessQuestion_ZeroInSeason(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{"value": int64(0)}))

	resp := ask(t, svc, "How many goals did Luke Bangs score in the 2016/17 season?")

	assert.Equal(t, "Luke Bangs didn't score in the 2016/17 season.", resp.Answer)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestProcessQuestion_Clarification(t *testing.T) {
	graph := singleResult(map[string]interface{}{"value": int64(3)})
	svc := newService(graph)

	resp := ask(t, svc, "What's the weather like today?")

	assert.Equal(t,
		"I couldn't understand that. Try asking about a specific stat, like goals or appearances.",
		resp.Answer)
	assert.Equal(t, 0.3, resp.Confidence)
	assert.Zero(t, graph.calls, "no graph query should be issued for an unparseable question")
}

func TestProcessQuestion_Idempotent(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{
		"value": int64(29), "appearances": int64(78),
	}))

	first := ask(t, svc, "How many goals has Luke Bangs scored?")
	second := ask(t, svc, "How many goals has Luke Bangs scored?")

	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestProcessQuestion_MultiMetricVisualization(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{"value": int64(5)}))

	resp := ask(t, svc, "How many goals and assists does Luke Bangs have?")

	require.NotNil(t, resp.Visualization)
	assert.Equal(t, "bar", resp.Visualization.Type)
	assert.Len(t, resp.Visualization.Data, 2)
}

func TestProcessQuestion_GraphFailure(t *testing.T) {
	svc := newService(&fakeGraph{runFn: func(string, map[string]interface{}) ([]repository.Record, error) {
		return nil, errors.New("connection reset by peer")
	}})

	resp := ask(t, svc, "How many goals has Luke Bangs scored?")

	assert.Equal(t, "Something went wrong answering that. Please try again.", resp.Answer)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.NotContains(t, resp.Answer, "connection reset")
	assert.NotContains(t, resp.Answer, "Error:")
}

func TestProcessQuestion_NoRowsMeansZero(t *testing.T) {
	svc := newService(&fakeGraph{runFn: func(string, map[string]interface{}) ([]repository.Record, error) {
		return nil, nil
	}})

	resp := ask(t, svc, "How many goals has Luke Bangs scored?")

	assert.Equal(t, "Luke Bangs hasn't scored a goal yet.", resp.Answer)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestProcessQuestion_MaliciousInputNeverEchoesPayload(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{"value": int64(3)}))

	questions := []string{
		"'; DROP TABLE players; -- how many goals?",
		"<script>alert(1)</script> goals for Luke Bangs",
		"MATCH (n) DETACH DELETE n",
	}
	for _, q := range questions {
		resp := ask(t, svc, q)
		assert.NotContains(t, resp.Answer, "DROP TABLE")
		assert.NotContains(t, resp.Answer, "<script")
		assert.NotContains(t, resp.Answer, "DETACH DELETE")
	}
}

func TestProcessQuestion_UserContextOverridesText(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{"value": int64(4)}))

	userCtx := "Tom Cowell"
	resp := svc.ProcessQuestion(context.Background(), dto.ChatQueryRequest{
		Question:    "How many goals have I scored?",
		UserContext: &userCtx,
	})

	require.NotNil(t, resp)
	assert.Equal(t, "Tom Cowell has scored 4 goals.", resp.Answer)
}

func TestProcessingDetails_ExposesLastRequest(t *testing.T) {
	svc := newService(singleResult(map[string]interface{}{"value": int64(29)}))

	resp := ask(t, svc, "How many goals has Luke Bangs scored?")
	require.NotNil(t, resp.Debug)

	details := svc.ProcessingDetails()
	require.NotNil(t, details.Analysis)
	assert.Equal(t, []string{"goals"}, details.Analysis.Metrics)
	require.Len(t, details.Queries, 1)
	assert.Equal(t, "goals", details.Queries[0].Metric)
	assert.Contains(t, details.Queries[0].Cypher, "MATCH (p:Player {name: $name})")
	assert.Equal(t, "Luke Bangs", details.Queries[0].Params["name"])
}
