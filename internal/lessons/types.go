package lessons

import (
	"fmt"
	"strings"
)

// Kind selects what the service generates.
type Kind string

const (
	KindPlan    Kind = "plan"
	KindStory   Kind = "story"
	KindMindMap Kind = "mindmap"
	KindReview  Kind = "review"
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindPlan, KindStory, KindMindMap, KindReview}

// ParseKind accepts a kind name case-insensitively; "mind-map" and
// "mind_map" are accepted for KindMindMap.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "_", "").Replace(s)
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown lesson kind %q (want plan, story, mindmap or review)", s)
}

// Input holds the context for any lesson kind.
type Input struct {
	Topic string `json:"topic"`

	// Level is the reading level, 1-5.
	Level int `json:"level"`

	// Mistakes are recent wrong answers, used by KindReview. Each entry is
	// a short line such as `expected "I went home." got "I goed home."`.
	Mistakes []string `json:"mistakes,omitempty"`
}

// VocabItem is a word with a child-friendly meaning and example.
type VocabItem struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// Activity is one step of a lesson plan.
type Activity struct {
	Name    string   `json:"name"`
	Minutes int      `json:"minutes"`
	Steps   []string `json:"steps"`
}

// Plan is a short lesson plan for a topic.
type Plan struct {
	Title      string      `json:"title"`
	Objectives []string    `json:"objectives"`
	Vocabulary []VocabItem `json:"vocabulary"`
	Activities []Activity  `json:"activities"`
}

// TotalMinutes sums the activity durations.
func (p *Plan) TotalMinutes() int {
	total := 0
	for _, a := range p.Activities {
		total += a.Minutes
	}
	return total
}

// ComprehensionQuestion checks understanding of a story.
type ComprehensionQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Story is a short reading passage with support material.
type Story struct {
	Title      string                  `json:"title"`
	Paragraphs []string                `json:"paragraphs"`
	Glossary   []VocabItem             `json:"glossary"`
	Questions  []ComprehensionQuestion `json:"questions"`
}

// Branch is one arm of a mind map.
type Branch struct {
	Label    string   `json:"label"`
	Children []string `json:"children"`
}

// MindMap organises vocabulary around a central topic.
type MindMap struct {
	Central  string   `json:"central"`
	Branches []Branch `json:"branches"`
}

// Review turns recent mistakes into encouragement and tips.
type Review struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}
