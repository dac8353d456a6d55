package catalog

import "regexp"

// ZeroStatRule substitutes a canonical phrase for a literal zero value.
// Matcher runs over the canonical metric key, never over surface text.
type ZeroStatRule struct {
	ID      string
	Matcher *regexp.Regexp
	Phrase  string
}

// ZeroRuleEngine is an explicit ordered list of (matcher, phrase) pairs.
// Order is semantically load-bearing: the first matching rule wins, so
// specific rules must be listed before catch-alls.
type ZeroRuleEngine struct {
	rules []ZeroStatRule
}

func NewZeroRuleEngine() *ZeroRuleEngine {
	return &ZeroRuleEngine{rules: []ZeroStatRule{
		{ID: "goals", Matcher: regexp.MustCompile(`^goals$`), Phrase: "hasn't scored a goal yet"},
		{ID: "assists", Matcher: regexp.MustCompile(`^assists$`), Phrase: "hasn't provided an assist yet"},
		{ID: "appearances", Matcher: regexp.MustCompile(`^appearances$`), Phrase: "hasn't made an appearance yet"},
		{ID: "yellow-cards", Matcher: regexp.MustCompile(`^yellowCards$`), Phrase: "hasn't received a yellow card yet"},
		{ID: "red-cards", Matcher: regexp.MustCompile(`^redCards$`), Phrase: "hasn't received a red card yet"},
		{ID: "any-cards", Matcher: regexp.MustCompile(`Cards$`), Phrase: "hasn't received a card yet"},
		{ID: "goals-conceded", Matcher: regexp.MustCompile(`^goalsConceded$`), Phrase: "hasn't conceded a goal yet"},
		{ID: "clean-sheets", Matcher: regexp.MustCompile(`^cleanSheets$`), Phrase: "hasn't kept a clean sheet yet"},
		{ID: "motm", Matcher: regexp.MustCompile(`^motm$`), Phrase: "hasn't won a man of the match award yet"},
		{ID: "win-percentage", Matcher: regexp.MustCompile(`^winPercentage$`), Phrase: "hasn't won a game yet"},
	}}
}

// Rules returns the rule list in evaluation order.
func (e *ZeroRuleEngine) Rules() []ZeroStatRule {
	return e.rules
}

// Match returns the first rule whose matcher accepts the canonical key.
func (e *ZeroRuleEngine) Match(key string) (ZeroStatRule, bool) {
	for _, r := range e.rules {
		if r.Matcher.MatchString(key) {
			return r, true
		}
	}
	return ZeroStatRule{}, false
}
