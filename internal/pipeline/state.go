// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "fmt"

// State is a position in the article pipeline.
type State int

const (
	StateCollectingSources State = iota
	StateSuggestingTopics
	StateChoosingTopic
	StateGeneratingTitles
	StateChoosingTitle
	StateGeneratingOutlines
	StateChoosingOutline
	StateWriting
	StateRefining
	StatePreparing
	StateStoring
	StateReviewing
	StateDone
)

var stateNames = map[State]string{
	StateCollectingSources:  "collecting sources",
	StateSuggestingTopics:   "suggesting topics",
	StateChoosingTopic:      "choosing topic",
	StateGeneratingTitles:   "generating titles",
	StateChoosingTitle:      "choosing title",
	StateGeneratingOutlines: "generating outlines",
	StateChoosingOutline:    "choosing outline",
	StateWriting:            "writing",
	StateRefining:           "refining",
	StatePreparing:          "preparing document",
	StateStoring:            "storing",
	StateReviewing:          "reviewing",
	StateDone:               "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TotalSteps is the number of user-visible progress steps.
const TotalSteps = 8

// Step numbers as shown to the user.
const (
	StepCollect = iota + 1
	StepTitle
	StepOutline
	StepWrite
	StepRefine
	StepRender
	StepStore
	StepReview
)

var stepDescriptions = [TotalSteps + 1]string{
	StepCollect: "Collecting sources and suggesting topics",
	StepTitle:   "Choosing a title",
	StepOutline: "Designing the outline",
	StepWrite:   "Writing the sections",
	StepRefine:  "Refining the article",
	StepRender:  "Preparing the Markdown document",
	StepStore:   "Saving the article",
	StepReview:  "Reviewing the result",
}

// StepDescription returns the label shown for step n.
func StepDescription(n int) string {
	if n < 1 || n > TotalSteps {
		return ""
	}
	return stepDescriptions[n]
}

// Step maps a state to its progress step.
func (s State) Step() int {
	switch s {
	case StateCollectingSources, StateSuggestingTopics:
		return StepCollect
	case StateChoosingTopic, StateGeneratingTitles, StateChoosingTitle:
		return StepTitle
	case StateGeneratingOutlines, StateChoosingOutline:
		return StepOutline
	case StateWriting:
		return StepWrite
	case StateRefining:
		return StepRefine
	case StatePreparing:
		return StepRender
	case StateStoring:
		return StepStore
	case StateReviewing:
		return StepReview
	default:
		return 0
	}
}

// PromptKind identifies what the driver is asking the user for.
type PromptKind int

const (
	PromptSourceMode PromptKind = iota
	PromptSourceList
	PromptPresets
	PromptSourceFile
	PromptFeedURL
	PromptTopic
	PromptTitle
	PromptArticleType
	PromptArticleStyle
	PromptOutline
	PromptFeedback
)

var promptQuestions = map[PromptKind]string{
	PromptSourceMode:   "How do you want to provide sources?",
	PromptSourceList:   "Enter 1-10 URLs separated by commas:",
	PromptPresets:      "Choose preset sites by number, separated by commas:",
	PromptSourceFile:   "Path of a file with one URL per line:",
	PromptFeedURL:      "RSS/Atom feed URL:",
	PromptTopic:        "Choose a topic by number or type your own:",
	PromptTitle:        "Choose a title by number or type your own:",
	PromptArticleType:  "Article type (for example review, analysis, tutorial):",
	PromptArticleStyle: "Article style (for example humorous, professional, popular science):",
	PromptOutline:      "Choose an outline by number or type your own (separate sections with ;):",
	PromptFeedback:     "Are you satisfied with the article? (satisfied / revise)",
}

// Question returns the text shown when asking for k.
func (k PromptKind) Question() string {
	if q, ok := promptQuestions[k]; ok {
		return q
	}
	return fmt.Sprintf("PromptKind(%d)", int(k))
}
