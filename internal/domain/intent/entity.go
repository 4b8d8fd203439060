// Package intent contains the structured representation of a user's food
// request, extracted from free text by the intent parser.
package intent

import "strings"

// UserIntent is the parsed form of one user message. It is created fresh per
// request and never mutated after construction; long-lived profile data is
// derived from it but the intent itself is never persisted.
type UserIntent struct {
	name             string
	surname          string
	preferences      []string
	restrictions     []string
	healthConditions []string
	instructions     []string
	caretaker        string
}

// NewUserIntent creates a UserIntent, normalizing health condition tags to
// lowercase and dropping blank entries from every list.
func NewUserIntent(name, surname string, preferences, restrictions, conditions, instructions []string, caretaker string) *UserIntent {
	return &UserIntent{
		name:             strings.TrimSpace(name),
		surname:          strings.TrimSpace(surname),
		preferences:      cleanList(preferences, false),
		restrictions:     cleanList(restrictions, true),
		healthConditions: cleanList(conditions, true),
		instructions:     cleanList(instructions, false),
		caretaker:        strings.TrimSpace(caretaker),
	}
}

// Name returns the user's first name, if one was mentioned.
func (i *UserIntent) Name() string {
	return i.name
}

// Surname returns the user's surname, if one was mentioned.
func (i *UserIntent) Surname() string {
	return i.surname
}

// Preferences returns cuisine and ingredient likes, in mention order.
func (i *UserIntent) Preferences() []string {
	return i.preferences
}

// Restrictions returns permanent dietary and allergy constraints,
// normalized to lowercase (e.g. "vegan", "peanuts").
func (i *UserIntent) Restrictions() []string {
	return i.restrictions
}

// HealthConditions returns normalized condition tags (e.g. "diabetes").
func (i *UserIntent) HealthConditions() []string {
	return i.healthConditions
}

// Instructions returns one-shot, meal-specific requests.
func (i *UserIntent) Instructions() []string {
	return i.instructions
}

// Caretaker returns the caretaker's name, if one was mentioned.
func (i *UserIntent) Caretaker() string {
	return i.caretaker
}

func cleanList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}
