// Package inference derives principle nodes from existing case material.
// Four modes are supported: deduction applies a general principle to a
// specific case, induction generalizes from multiple examples, abduction
// hypothesizes the best explanation for a set of observations, and analogy
// transfers a principle across legal domains.
//
// An inference never mutates the store it reads from; the derived node and
// supporting edges are returned in a Result and only inserted by Apply,
// through the normal validated operations.
package inference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// Kind identifies the inference mode that produced a result.
type Kind string

const (
	KindDeductive  Kind = "deductive"
	KindInductive  Kind = "inductive"
	KindAbductive  Kind = "abductive"
	KindAnalogical Kind = "analogical"
)

// ParseKind maps a free-form tag onto the closed enumeration.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeductive, KindInductive, KindAbductive, KindAnalogical:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown inference kind %q", s)
}

// ConfidenceModel holds the coefficients of the confidence computations. The
// structure of each formula is fixed; the coefficients are a modelling
// choice, so they are configurable rather than constants.
type ConfidenceModel struct {
	// InductiveCap bounds inductive confidence no matter how many
	// examples support the generalization.
	InductiveCap float64
	// AbductiveDiscount scales the hypothesis quality score to reflect
	// that abduction only produces a best guess.
	AbductiveDiscount float64
	// AnalogicalDiscount scales transferred confidence.
	AnalogicalDiscount float64

	// Weights of the three abductive quality factors.
	ExplanatoryWeight float64
	CoherenceWeight   float64
	SimplicityWeight  float64

	// MinDomainSimilarity rejects analogies between domains that are too
	// far apart.
	MinDomainSimilarity float64
}

// DefaultConfidenceModel returns the stock coefficients.
func DefaultConfidenceModel() ConfidenceModel {
	return ConfidenceModel{
		InductiveCap:        0.95,
		AbductiveDiscount:   0.7,
		AnalogicalDiscount:  0.9,
		ExplanatoryWeight:   0.5,
		CoherenceWeight:     0.3,
		SimplicityWeight:    0.2,
		MinDomainSimilarity: 0.6,
	}
}

// Result is a derived principle plus the edges that tie it to its sources.
// Nothing in a Result exists in the store until Apply inserts it.
type Result struct {
	Conclusion      *hypergraph.Node
	SupportingEdges []*hypergraph.Hyperedge
	Confidence      float64
	Kind            Kind
	Explanation     string
}

// Engine runs inference operations against a hypergraph.
type Engine struct {
	model ConfidenceModel
}

// NewEngine returns an engine using the given coefficients.
func NewEngine(model ConfidenceModel) *Engine {
	return &Engine{model: model}
}

// Deduce applies a general principle to a specific case. The conclusion
// inherits the weaker of the two premise confidences: a deduction is only as
// strong as its weakest premise.
func (e *Engine) Deduce(g *hypergraph.Hypergraph, generalID, specificID string) (*Result, error) {
	general := g.Node(generalID)
	specific := g.Node(specificID)
	var missing []string
	if general == nil {
		missing = append(missing, generalID)
	}
	if specific == nil {
		missing = append(missing, specificID)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &hypergraph.UnknownNodeError{IDs: missing}
	}

	confidence := nodeConfidence(general)
	if c := nodeConfidence(specific); c < confidence {
		confidence = c
	}

	id := fmt.Sprintf("deduced_%s_%s", generalID, specificID)
	conclusion := principleNode(id, confidence, map[string]hypergraph.AttrValue{
		"general_principle": hypergraph.String(generalID),
		"specific_case":     hypergraph.String(specificID),
	})

	edges := []*hypergraph.Hyperedge{
		supportEdge(id+"_from", hypergraph.RelationDerivesFrom, []string{id, generalID}, confidence),
		supportEdge(id+"_applies", hypergraph.RelationApplies, []string{id, specificID}, confidence),
	}

	return &Result{
		Conclusion:      conclusion,
		SupportingEdges: edges,
		Confidence:      confidence,
		Kind:            KindDeductive,
		Explanation:     fmt.Sprintf("deduced by applying %s to %s", generalID, specificID),
	}, nil
}

// Induce generalizes a principle from multiple example nodes. Confidence
// grows with the number of examples as n/(n+1), capped by the model.
func (e *Engine) Induce(g *hypergraph.Hypergraph, sourceIDs []string) (*Result, error) {
	sources, err := resolveSources(g, sourceIDs, 2)
	if err != nil {
		return nil, err
	}

	n := float64(len(sources))
	confidence := n / (n + 1)
	if confidence > e.model.InductiveCap {
		confidence = e.model.InductiveCap
	}

	pattern := commonPattern(sources)
	id := fmt.Sprintf("induced_%s", pattern.id)
	conclusion := principleNode(id, confidence, map[string]hypergraph.AttrValue{
		"name":         hypergraph.String(pattern.name),
		"content":      hypergraph.String(pattern.description),
		"num_examples": hypergraph.Number(n),
	})

	edges := make([]*hypergraph.Hyperedge, 0, len(sources))
	for _, src := range sources {
		eid := fmt.Sprintf("%s_from_%s", id, src.ID)
		edges = append(edges, supportEdge(eid, hypergraph.RelationDerivesFrom, []string{id, src.ID}, confidence))
	}

	return &Result{
		Conclusion:      conclusion,
		SupportingEdges: edges,
		Confidence:      confidence,
		Kind:            KindInductive,
		Explanation:     fmt.Sprintf("generalized %q from %d examples", pattern.name, len(sources)),
	}, nil
}

// Abduce hypothesizes the explanation that best accounts for the observed
// nodes. The confidence blends explanatory power, coherence and simplicity,
// then discounts the blend because abduction is inherently uncertain.
func (e *Engine) Abduce(g *hypergraph.Hypergraph, sourceIDs []string) (*Result, error) {
	sources, err := resolveSources(g, sourceIDs, 2)
	if err != nil {
		return nil, err
	}

	pattern := commonPattern(sources)
	power := pattern.explanatoryPower(len(sources))
	coherence := pattern.coherence()
	simplicity := pattern.simplicity()

	quality := e.model.ExplanatoryWeight*power +
		e.model.CoherenceWeight*coherence +
		e.model.SimplicityWeight*simplicity
	confidence := quality * e.model.AbductiveDiscount

	id := fmt.Sprintf("abduced_%s", pattern.id)
	conclusion := principleNode(id, confidence, map[string]hypergraph.AttrValue{
		"name":              hypergraph.String(pattern.name),
		"content":           hypergraph.String(pattern.description),
		"explanatory_power": hypergraph.Number(power),
		"coherence":         hypergraph.Number(coherence),
		"simplicity":        hypergraph.Number(simplicity),
	})

	edges := make([]*hypergraph.Hyperedge, 0, len(sources))
	for _, src := range sources {
		eid := fmt.Sprintf("%s_supported_by_%s", id, src.ID)
		edges = append(edges, supportEdge(eid, hypergraph.RelationSupports, []string{id, src.ID}, confidence))
	}

	return &Result{
		Conclusion:      conclusion,
		SupportingEdges: edges,
		Confidence:      confidence,
		Kind:            KindAbductive,
		Explanation:     fmt.Sprintf("best explanation %q (power %.2f, coherence %.2f)", pattern.name, power, coherence),
	}, nil
}

// Analogize transfers a principle into another legal domain. The transferred
// confidence is the source confidence scaled by the domain similarity and
// the model discount. An analogy between domains below the similarity floor
// is rejected.
func (e *Engine) Analogize(g *hypergraph.Hypergraph, sourceID, targetDomain string) (*Result, error) {
	source := g.Node(sourceID)
	if source == nil {
		return nil, &hypergraph.UnknownNodeError{IDs: []string{sourceID}}
	}
	if targetDomain == "" {
		return nil, fmt.Errorf("analogical inference needs a target domain")
	}

	sourceDomain := nodeDomain(source)
	similarity := domainSimilarity(sourceDomain, targetDomain)
	if similarity < e.model.MinDomainSimilarity {
		return nil, fmt.Errorf("domain similarity %.2f between %q and %q below floor %.2f",
			similarity, sourceDomain, targetDomain, e.model.MinDomainSimilarity)
	}

	confidence := similarity * nodeConfidence(source) * e.model.AnalogicalDiscount

	id := fmt.Sprintf("analogy_%s_to_%s", sourceID, targetDomain)
	conclusion := principleNode(id, confidence, map[string]hypergraph.AttrValue{
		"source_principle": hypergraph.String(sourceID),
		"source_domain":    hypergraph.String(sourceDomain),
		"domain":           hypergraph.String(targetDomain),
		"similarity":       hypergraph.Number(similarity),
	})

	edges := []*hypergraph.Hyperedge{
		supportEdge(id+"_edge", hypergraph.RelationApplies, []string{id, sourceID}, confidence),
	}

	return &Result{
		Conclusion:      conclusion,
		SupportingEdges: edges,
		Confidence:      confidence,
		Kind:            KindAnalogical,
		Explanation:     fmt.Sprintf("transferred from %s to %s (similarity %.2f)", sourceDomain, targetDomain, similarity),
	}, nil
}

// Apply inserts a result's conclusion and supporting edges into the store.
// Insertion goes through the validated operations, so a result referencing
// nodes removed since the inference ran is rejected, not silently patched.
func Apply(g *hypergraph.Hypergraph, r *Result) error {
	if r == nil || r.Conclusion == nil {
		return fmt.Errorf("nothing to apply")
	}
	if _, err := g.AddNode(r.Conclusion.ID, r.Conclusion.Type, r.Conclusion.Attrs); err != nil {
		return err
	}
	for _, edge := range r.SupportingEdges {
		if _, err := g.AddEdge(edge.ID, edge.Type, edge.MemberIDs(), edge.Weight); err != nil {
			return err
		}
	}
	return nil
}

func principleNode(id string, confidence float64, attrs map[string]hypergraph.AttrValue) *hypergraph.Node {
	if attrs == nil {
		attrs = map[string]hypergraph.AttrValue{}
	}
	attrs["confidence"] = hypergraph.Number(confidence)
	return &hypergraph.Node{ID: id, Type: hypergraph.NodeTypePrinciple, Attrs: attrs}
}

func supportEdge(id string, typ hypergraph.RelationType, members []string, confidence float64) *hypergraph.Hyperedge {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &hypergraph.Hyperedge{ID: id, Type: typ, Members: set, Weight: confidence}
}

func resolveSources(g *hypergraph.Hypergraph, ids []string, min int) ([]*hypergraph.Node, error) {
	if len(ids) < min {
		return nil, fmt.Errorf("inference needs at least %d source nodes, got %d", min, len(ids))
	}
	nodes := make([]*hypergraph.Node, 0, len(ids))
	var missing []string
	for _, id := range ids {
		n := g.Node(id)
		if n == nil {
			missing = append(missing, id)
			continue
		}
		nodes = append(nodes, n)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &hypergraph.UnknownNodeError{IDs: missing}
	}
	return nodes, nil
}

// nodeConfidence reads the node's confidence attribute, defaulting to 1.0:
// a node with no recorded uncertainty is treated as established.
func nodeConfidence(n *hypergraph.Node) float64 {
	if v, ok := n.Attrs["confidence"]; ok {
		if c, ok := v.AsNumber(); ok {
			return c
		}
	}
	return 1.0
}

func nodeDomain(n *hypergraph.Node) string {
	if v, ok := n.Attrs["domain"]; ok {
		if d, ok := v.AsString(); ok {
			return d
		}
	}
	return "unknown"
}

func nodeText(n *hypergraph.Node) string {
	var parts []string
	for _, key := range []string{"name", "content"} {
		if v, ok := n.Attrs[key]; ok {
			if s, ok := v.AsString(); ok {
				parts = append(parts, s)
			}
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
