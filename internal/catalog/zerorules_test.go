package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statchat-backend/internal/catalog"
)

func TestZeroRuleEngine_FirstMatchWins(t *testing.T) {
	engine := catalog.NewZeroRuleEngine()

	tests := []struct {
		name           string
		key            string
		expectedRuleID string
		expectOK       bool
	}{
		{name: "Specific Rule Before Catch All", key: catalog.MetricYellowCards, expectedRuleID: "yellow-cards", expectOK: true},
		{name: "Red Card Specific", key: catalog.MetricRedCards, expectedRuleID: "red-cards", expectOK: true},
		{name: "Green Card Falls To Catch All", key: catalog.MetricGreenCards, expectedRuleID: "any-cards", expectOK: true},
		{name: "Goals", key: catalog.MetricGoals, expectedRuleID: "goals", expectOK: true},
		{name: "No Rule For Ratio", key: catalog.MetricGoalsPerGame, expectOK: false},
		{name: "No Rule For Affiliation", key: catalog.MetricCurrentTeam, expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := engine.Match(tt.key)
			require.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectedRuleID, rule.ID)
				assert.NotContains(t, rule.Phrase, "0")
			}
		})
	}
}

func TestZeroRuleEngine_RuleOrderIsStable(t *testing.T) {
	engine := catalog.NewZeroRuleEngine()
	rules := engine.Rules()
	require.NotEmpty(t, rules)

	// The catch-all card rule must come after the colour-specific ones.
	indexOf := func(id string) int {
		for i, r := range rules {
			if r.ID == id {
				return i
			}
		}
		return -1
	}
	assert.Less(t, indexOf("yellow-cards"), indexOf("any-cards"))
	assert.Less(t, indexOf("red-cards"), indexOf("any-cards"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, catalog.IsZero(0))
	assert.True(t, catalog.IsZero(1e-12))
	assert.True(t, catalog.IsZero(-1e-12))
	assert.False(t, catalog.IsZero(0.01))
	assert.False(t, catalog.IsZero(1))
}
