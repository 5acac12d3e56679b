// Package fallback is the network-free intent matcher behind the "Neural
// Assistant". It answers from a static rule table so the chat always has
// something to show when the relay is unreachable.
package fallback

import (
	"strings"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
)

// Matcher scores a fixed rule table against free-text input. It is a pure
// function over (table, input): no I/O, no randomness, safe to call from
// any goroutine.
type Matcher struct {
	rules    []domain.IntentRule
	fallback string
}

// New builds a matcher over the given table. The fallback response is
// returned whenever no rule scores above zero.
func New(rules []domain.IntentRule, fallbackResponse string) *Matcher {
	return &Matcher{rules: rules, fallback: fallbackResponse}
}

// NewDefault builds a matcher over the built-in table.
func NewDefault() *Matcher {
	return New(DefaultRules(), DefaultResponse)
}

// Match returns the response of the highest-scoring rule. A matched
// keyword scores its word count, so multi-word phrases outrank single
// words. Later rules replace the best match only on strict improvement,
// keeping the earliest-declared rule on ties.
func (m *Matcher) Match(input string) string {
	text := strings.ToLower(input)

	bestScore := 0
	response := m.fallback
	for _, rule := range m.rules {
		score := 0
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if strings.Contains(text, keyword) {
				score += len(strings.Fields(keyword))
			}
		}
		if score > bestScore {
			bestScore = score
			response = rule.Response
		}
	}
	return response
}
