// Package resolve merges per-field evidence into resolved values. Evidence
// is grouped by normalized value, disagreement between groups is settled by
// weighted voting, and every resolution reports how contested it was.
package resolve

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// group is a set of evidence items that agree on a normalized value.
type group struct {
	normalized string
	items      []model.Evidence
	total      float64
}

// representative picks the evidence whose original value stands for the
// group. Highest weight wins; first seen breaks ties.
func (g *group) representative() model.Evidence {
	best := g.items[0]
	for _, item := range g.items[1:] {
		if item.Weight > best.Weight {
			best = item
		}
	}
	return best
}

// Resolve settles all evidence for one record. Evidence is bucketed by field
// key and each bucket is resolved independently; the returned map is keyed by
// field key and contains only fields that had at least one usable item.
func Resolve(evidence []model.Evidence) map[string]model.FieldResolution {
	byField := make(map[string][]model.Evidence)
	for _, ev := range evidence {
		if strings.TrimSpace(ev.Value) == "" {
			continue
		}
		byField[ev.FieldKey] = append(byField[ev.FieldKey], ev)
	}

	resolved := make(map[string]model.FieldResolution, len(byField))
	for field, items := range byField {
		resolved[field] = ResolveField(field, items)
	}
	return resolved
}

// ResolveField performs weighted voting over the evidence for a single
// field. A lone value group resolves with the mean of its weights and no
// conflict; disagreeing groups resolve to the heaviest group, with
// confidence equal to its share of the total weight and the losing groups
// reported as alternatives. Equal-weight ties go to the lexicographically
// smallest normalized value, so repeated runs over the same evidence always
// agree.
func ResolveField(field string, evidence []model.Evidence) model.FieldResolution {
	groups := groupByValue(evidence)
	if len(groups) == 0 {
		return model.FieldResolution{FieldKey: field}
	}

	if len(groups) == 1 {
		g := groups[0]
		sum := 0.0
		for _, item := range g.items {
			sum += item.Weight
		}
		rep := g.representative()
		return model.FieldResolution{
			FieldKey:   field,
			Value:      rep.Value,
			Confidence: model.ClampConfidence(sum / float64(len(g.items))),
			Source:     rep.Source,
		}
	}

	// Heaviest group first; ties ordered by normalized value so the
	// winner is stable across runs.
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].total != groups[j].total {
			return groups[i].total > groups[j].total
		}
		return groups[i].normalized < groups[j].normalized
	})

	winner := groups[0]
	tieBroken := len(groups) > 1 && groups[1].total == winner.total
	if tieBroken {
		zap.L().Warn("evidence tie broken lexicographically",
			zap.String("field", field),
			zap.String("value", winner.normalized),
			zap.Float64("weight", winner.total))
	}

	totalWeight := 0.0
	for _, g := range groups {
		totalWeight += g.total
	}

	alternatives := make([]model.Alternative, 0, len(groups)-1)
	for _, g := range groups[1:] {
		alternatives = append(alternatives, model.Alternative{
			Value: g.representative().Value,
			Score: g.total,
		})
	}

	rep := winner.representative()
	confidence := 0.0
	if totalWeight > 0 {
		confidence = winner.total / totalWeight
	}
	return model.FieldResolution{
		FieldKey:     field,
		Value:        rep.Value,
		Confidence:   model.ClampConfidence(confidence),
		Source:       rep.Source,
		Conflict:     true,
		TieBroken:    tieBroken,
		Alternatives: alternatives,
	}
}

// groupByValue buckets evidence by normalized value, preserving first-seen
// order of both groups and their members.
func groupByValue(evidence []model.Evidence) []*group {
	index := make(map[string]*group)
	var ordered []*group
	for _, ev := range evidence {
		key := Normalize(ev.Value)
		g, ok := index[key]
		if !ok {
			g = &group{normalized: key}
			index[key] = g
			ordered = append(ordered, g)
		}
		g.items = append(g.items, ev)
		g.total += ev.Weight
	}
	return ordered
}

// Normalize canonicalizes a value for grouping: surrounding whitespace is
// dropped, interior runs collapse to one space, and comparison is
// case-folded. Raw-string equality alone treats "123 Main St" and
// "123  main st" as disagreement.
func Normalize(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
