// Package sentiment assigns a lexicon-based polarity score to free text.
package sentiment

import "strings"

// stepsPerUnit is the number of lexicon hits that move the score by 1.0.
// Each hit is worth 1/stepsPerUnit = 0.2.
const stepsPerUnit = 5

var positive = map[string]struct{}{
	"happy":   {},
	"great":   {},
	"good":    {},
	"awesome": {},
	"love":    {},
}

var negative = map[string]struct{}{
	"sad":      {},
	"bad":      {},
	"terrible": {},
	"hate":     {},
	"awful":    {},
}

// Score lowercases text, splits it on whitespace and adds 0.2 for every
// token found in the positive lexicon and subtracts 0.2 for every token found
// in the negative one. Only whole tokens match, so "happy." scores nothing.
// The result is clamped to [-1, 1].
func Score(text string) float64 {
	steps := 0
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positive[tok]; ok {
			steps++
		}
		if _, ok := negative[tok]; ok {
			steps--
		}
	}
	switch {
	case steps >= stepsPerUnit:
		return 1
	case steps <= -stepsPerUnit:
		return -1
	}
	// dividing the hit count keeps two hits at exactly 0.4
	return float64(steps) / stepsPerUnit
}
