// Package nutrition contains the medically derived dietary constraints a
// recipe recommendation must honor.
package nutrition

import "strings"

// Bound is a numeric limit on one nutrient. Either side may be nil.
type Bound struct {
	Max *float64 `json:"max,omitempty"`
	Min *float64 `json:"min,omitempty"`
}

// Constraints captures the dietary rules derived from a user's health
// conditions. Avoid entries are zero-tolerance exclusions; Limit entries are
// advisory only. Limits maps nutrient keys (e.g. "sugar_g", "sodium_mg") to
// numeric bounds per serving.
type Constraints struct {
	DietaryGoals    []string
	FoodsToIncrease []string
	Avoid           []string
	Limit           []string
	Limits          map[string]Bound
	Notes           string
}

// DefaultConstraints returns non-restrictive general guidance for users with
// no known health conditions. Repeated calls yield equal values.
func DefaultConstraints() *Constraints {
	return &Constraints{
		DietaryGoals:    []string{"balanced nutrition"},
		FoodsToIncrease: []string{"vegetables", "whole grains", "lean protein"},
		Avoid:           []string{},
		Limit:           []string{},
		Limits:          map[string]Bound{},
		Notes:           "General healthy eating guidance. No medical restrictions on file.",
	}
}

// MergeAvoid unions entries into the avoid list, existing entries first,
// preserving order and dropping duplicates. Comma-separated entries are
// flattened into individual foods.
func (c *Constraints) MergeAvoid(entries []string) {
	c.Avoid = MergeUnique(c.Avoid, SplitCommaList(entries))
}

// MergeLimit unions entries into the limit list, existing entries first.
func (c *Constraints) MergeLimit(entries []string) {
	c.Limit = MergeUnique(c.Limit, SplitCommaList(entries))
}

// MergeUnique unions two lists preserving relative order, entries from first
// before entries from second, comparing case-insensitively after trimming.
func MergeUnique(first, second []string) []string {
	seen := make(map[string]struct{}, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, list := range [][]string{first, second} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// SplitCommaList expands any comma-separated entries into individual items,
// preserving order.
func SplitCommaList(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		for _, part := range strings.Split(e, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
