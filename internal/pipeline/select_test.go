// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	opts := []string{"alpha", "beta"}
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"first", "1", "alpha", true},
		{"padded", "  2 ", "beta", true},
		{"out of range", "3", "3", true},
		{"zero", "0", "0", true},
		{"free text", "gamma ray", "gamma ray", true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(tt.input, opts)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestionOptions(t *testing.T) {
	text := "1. AI chips\n2) Batteries\n\n3、 量子计算\n- Space\n* Robots\n2024: a year in review\n"
	assert.Equal(t, []string{
		"AI chips",
		"Batteries",
		"量子计算",
		"Space",
		"Robots",
		"2024: a year in review",
	}, SuggestionOptions(text))

	assert.Empty(t, SuggestionOptions("\n  \n"))
}

func TestOutlineOptions(t *testing.T) {
	t.Run("dash separators", func(t *testing.T) {
		text := "Intro\nBody\n---\nStart\n\nEnd\n -----\n"
		assert.Equal(t, []string{"Intro\nBody", "Start\n\nEnd"}, OutlineOptions(text))
	})
	t.Run("blank line separators", func(t *testing.T) {
		text := "Intro\nBody\n\n\nStart\nEnd"
		assert.Equal(t, []string{"Intro\nBody", "Start\nEnd"}, OutlineOptions(text))
	})
	t.Run("single block", func(t *testing.T) {
		assert.Equal(t, []string{"A\nB"}, OutlineOptions("A\nB\n"))
	})
}

func TestTypedOutline(t *testing.T) {
	assert.Equal(t, "Intro\nBody\nEnd", TypedOutline(" Intro ;Body;; End "))
	assert.Equal(t, "Only", TypedOutline("Only"))
	assert.Equal(t, "", TypedOutline(" ; "))
}

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		input string
		want  Feedback
	}{
		{"satisfied", FeedbackSatisfied},
		{"  Satisfied ", FeedbackSatisfied},
		{"满意", FeedbackSatisfied},
		{"1", FeedbackSatisfied},
		{"REVISE", FeedbackRevise},
		{"修改", FeedbackRevise},
		{"2", FeedbackRevise},
		{"", FeedbackUnknown},
		{"yes", FeedbackUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFeedback(tt.input))
		})
	}
}

func TestStateStep(t *testing.T) {
	assert.Equal(t, StepCollect, StateSuggestingTopics.Step())
	assert.Equal(t, StepTitle, StateChoosingTopic.Step())
	assert.Equal(t, StepOutline, StateChoosingOutline.Step())
	assert.Equal(t, StepRender, StateStoring.Step())
	assert.Equal(t, StepReview, StateReviewing.Step())
	assert.Equal(t, 0, StateDone.Step())

	for n := 1; n <= TotalSteps; n++ {
		assert.NotEmpty(t, StepDescription(n), "step %d", n)
	}
	assert.Empty(t, StepDescription(0))
	assert.Empty(t, StepDescription(TotalSteps+1))
}

func TestStateAndPromptStrings(t *testing.T) {
	assert.Equal(t, "choosing outline", StateChoosingOutline.String())
	assert.Equal(t, "State(99)", State(99).String())
	assert.Contains(t, PromptFeedback.Question(), "satisfied")
	assert.Equal(t, "PromptKind(99)", PromptKind(99).Question())
}
