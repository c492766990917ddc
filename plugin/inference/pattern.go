package inference

import (
	"strings"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// pattern is a recognized recurring legal theme, used as the basis for
// inductive generalizations and abductive hypotheses.
type pattern struct {
	id          string
	name        string
	description string
	matches     int
	total       int
	generic     bool
}

// knownPatterns lists the themes the engine can recognize from node text.
// Order matters: the first pattern matched by at least half the sources
// wins.
var knownPatterns = []struct {
	id          string
	keywords    []string
	name        string
	description string
}{
	{
		id:          "reasonable_person",
		keywords:    []string{"reasonable person", "reasonable", "reasonableness"},
		name:        "Reasonable Person Standard",
		description: "Legal standards are based on the reasonable person test",
	},
	{
		id:          "mental_element",
		keywords:    []string{"intent", "mens rea", "fault", "negligence", "mental"},
		name:        "Mental Culpability Principle",
		description: "Legal liability requires mental culpability for fairness",
	},
	{
		id:          "contract_formation",
		keywords:    []string{"offer", "acceptance", "consideration", "contract"},
		name:        "Contract Formation Principle",
		description: "Contracts require offer, acceptance, and consideration",
	},
	{
		id:          "procedural_fairness",
		keywords:    []string{"fair", "fairness", "procedural", "hearing", "notice"},
		name:        "Procedural Fairness Principle",
		description: "Legal processes must be procedurally fair",
	},
}

// commonPattern finds the theme shared by most of the sources, falling back
// to a generic principle when no specific theme covers at least half of
// them.
func commonPattern(sources []*hypergraph.Node) pattern {
	texts := make([]string, len(sources))
	for i, n := range sources {
		texts[i] = nodeText(n)
	}

	for _, candidate := range knownPatterns {
		matches := 0
		for _, text := range texts {
			for _, kw := range candidate.keywords {
				if strings.Contains(text, kw) {
					matches++
					break
				}
			}
		}
		if matches*2 >= len(sources) {
			return pattern{
				id:          candidate.id,
				name:        candidate.name,
				description: candidate.description,
				matches:     matches,
				total:       len(sources),
			}
		}
	}

	return pattern{
		id:          "generic",
		name:        "Common Legal Principle",
		description: "Generalized principle from multiple legal rules",
		matches:     len(sources),
		total:       len(sources),
		generic:     true,
	}
}

// explanatoryPower is the share of observations the pattern accounts for.
// Generic fallbacks get a fixed middling score.
func (p pattern) explanatoryPower(observations int) float64 {
	if p.generic {
		return 0.7
	}
	power := float64(p.matches) / float64(observations)
	if power > 1 {
		power = 1
	}
	return power
}

// coherence reflects how well the hypothesis fits the recognized framework.
func (p pattern) coherence() float64 {
	if p.generic {
		return 0.6
	}
	return 0.8
}

// simplicity applies Occam's razor via description length.
func (p pattern) simplicity() float64 {
	switch n := len(p.description); {
	case n < 100:
		return 0.9
	case n < 200:
		return 0.7
	default:
		return 0.5
	}
}

// Domain proximity groups: domains in the same group transfer well, related
// groups transfer with caution, unrelated ones poorly.
var (
	civilDomains       = map[string]struct{}{"civil": {}, "contract": {}, "delict": {}, "property": {}}
	publicDomains      = map[string]struct{}{"constitutional": {}, "administrative": {}, "criminal": {}}
	specializedDomains = map[string]struct{}{"labour": {}, "environmental": {}, "construction": {}, "international": {}}
)

func domainSimilarity(source, target string) float64 {
	source = strings.ToLower(source)
	target = strings.ToLower(target)
	if source == target {
		return 1.0
	}

	in := func(m map[string]struct{}, s string) bool {
		_, ok := m[s]
		return ok
	}

	switch {
	case in(civilDomains, source) && in(civilDomains, target):
		return 0.8
	case in(publicDomains, source) && in(publicDomains, target):
		return 0.8
	case in(specializedDomains, source) && in(specializedDomains, target):
		return 0.7
	case in(civilDomains, source) && in(specializedDomains, target),
		in(specializedDomains, source) && in(civilDomains, target):
		return 0.6
	}
	return 0.4
}
