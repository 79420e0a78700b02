// Package rank filters recent projects against a query and orders them by a
// composite of recency and match bonuses.
package rank

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/strrl/jb-recent/pkg/models"
)

// MatchMode selects how a query is matched against paths and names
type MatchMode string

const (
	// MatchSubstring is a case-insensitive substring test
	MatchSubstring MatchMode = "substring"
	// MatchFuzzy accepts the query characters as an in-order subsequence
	MatchFuzzy MatchMode = "fuzzy"
)

const (
	NameBonus   = 2.0
	ParentBonus = 1.0
)

// ParseMatchMode validates a configured match mode
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchFuzzy:
		return MatchFuzzy, nil
	default:
		return "", fmt.Errorf("invalid match mode %q", s)
	}
}

// Engine ranks projects for a query
type Engine struct {
	Mode MatchMode
}

// Match reports whether query matches s. The empty query matches anything.
func (e Engine) Match(s, query string) bool {
	if query == "" {
		return true
	}
	if e.Mode == MatchFuzzy {
		return len(fuzzy.Find(query, []string{s})) > 0
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// Filter keeps the projects whose path matches query, in input order
func (e Engine) Filter(projects []models.IdeProject, query string) []models.IdeProject {
	if query == "" {
		return append([]models.IdeProject(nil), projects...)
	}
	if e.Mode == MatchFuzzy {
		matches := fuzzy.FindFrom(query, pathSource(projects))
		idx := make([]int, 0, len(matches))
		for _, m := range matches {
			idx = append(idx, m.Index)
		}
		// fuzzy orders by match quality, the filter keeps input order
		sort.Ints(idx)
		out := make([]models.IdeProject, 0, len(idx))
		for _, i := range idx {
			out = append(out, projects[i])
		}
		return out
	}

	out := make([]models.IdeProject, 0, len(projects))
	for _, p := range projects {
		if e.Match(p.Path, query) {
			out = append(out, p)
		}
	}
	return out
}

// Score filters projects and returns them with composite scores, highest
// first. Equal scores keep their input order.
//
// The recency score of the project at position r of the timestamp-descending
// order of n candidates is 1 - r/n. A query matching the display name adds
// NameBonus, one matching the parent directory adds ParentBonus.
func (e Engine) Score(projects []models.IdeProject, query string) []models.RankedResult {
	filtered := e.Filter(projects, query)
	total := len(filtered)
	if total == 0 {
		return nil
	}

	byRecency := make([]int, total)
	for i := range byRecency {
		byRecency[i] = i
	}
	sort.SliceStable(byRecency, func(a, b int) bool {
		return filtered[byRecency[a]].Timestamp > filtered[byRecency[b]].Timestamp
	})

	results := make([]models.RankedResult, total)
	for rank, i := range byRecency {
		p := filtered[i]
		score := 1 - float64(rank)/float64(total)
		if e.Match(p.Name, query) {
			score += NameBonus
		}
		if e.Match(filepath.Dir(p.Path), query) {
			score += ParentBonus
		}
		results[i] = models.RankedResult{Project: p, Score: score}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// Rank is Score without the scores
func (e Engine) Rank(projects []models.IdeProject, query string) []models.IdeProject {
	scored := e.Score(projects, query)
	out := make([]models.IdeProject, len(scored))
	for i, r := range scored {
		out[i] = r.Project
	}
	return out
}

type pathSource []models.IdeProject

func (s pathSource) String(i int) string { return s[i].Path }

func (s pathSource) Len() int { return len(s) }
