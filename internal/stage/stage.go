// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stage defines the prompt-driven generation steps of the article
// pipeline. A Stage renders a prompt template from its inputs and issues
// exactly one completion call; it never retries and never caches.
package stage

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/pdiddy/article-engine/internal/completion"
)

// Stage pairs a name with the prompt template it renders.
type Stage struct {
	Name     string
	Template *template.Template
}

// Render executes the stage template with inputs. The same inputs always
// produce the same prompt.
func (s Stage) Render(inputs any) (string, error) {
	var buf bytes.Buffer
	if err := s.Template.Execute(&buf, inputs); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", s.Name, err)
	}
	return buf.String(), nil
}

// Generate renders the prompt and sends it to client once.
func (s Stage) Generate(ctx context.Context, client completion.Client, inputs any) (string, error) {
	prompt, err := s.Render(inputs)
	if err != nil {
		return "", err
	}
	out, err := client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Name, err)
	}
	return out, nil
}

// TopicInputs feeds the Topics stage.
type TopicInputs struct {
	Text     string // aggregated page text, embedded verbatim
	Count    int
	Language string
}

// TitleInputs feeds the Titles stage.
type TitleInputs struct {
	Topic    string
	Count    int
	Language string
}

// OutlineInputs feeds the Outlines stage.
type OutlineInputs struct {
	Topic       string
	Title       string
	ArticleType string
	Style       string
	Count       int
	Language    string
}

// SectionInputs feeds the Section stage.
type SectionInputs struct {
	Topic    string
	Section  string
	Language string
}

// RefineInputs feeds the Refine stage.
type RefineInputs struct {
	Draft    string
	Language string
}

var (
	// Topics analyses collected news text and proposes article topics.
	Topics = Stage{Name: "topics", Template: template.Must(template.New("topics").Parse(
		`Analyse the following technology news content and suggest {{.Count}} article topics. For each topic give a short reason. Number the topics 1 to {{.Count}}, one per line. Write in {{.Language}}.

{{.Text}}`))}

	// Titles proposes titles for a chosen topic, each with an article type and style.
	Titles = Stage{Name: "titles", Template: template.Must(template.New("titles").Parse(
		`Suggest {{.Count}} engaging article titles for the topic below. For each title give the matching article type (for example review, analysis, tutorial) and article style (for example humorous, professional, popular science). Number the titles 1 to {{.Count}}, one per line. Write in {{.Language}}.

Topic: {{.Topic}}`))}

	// Outlines designs detailed outlines from the chosen topic, title, type and style.
	Outlines = Stage{Name: "outlines", Template: template.Must(template.New("outlines").Parse(
		`Design {{.Count}} detailed article outlines from the information below. Put each section heading of an outline on its own line and separate the outlines with a line containing only ---. Write in {{.Language}}.

Topic: {{.Topic}}
Title: {{.Title}}
Type: {{.ArticleType}}
Style: {{.Style}}`))}

	// Section writes the prose for one outline section.
	Section = Stage{Name: "section", Template: template.Must(template.New("section").Parse(
		`Write the content for the section "{{.Section}}" to the standard of a finished article. The article topic is: {{.Topic}}. Write in {{.Language}}.`))}

	// Refine polishes a complete draft.
	Refine = Stage{Name: "refine", Template: template.Must(template.New("refine").Parse(
		`Polish the following article so that its wording, punctuation and grammar suit readers of {{.Language}}. Keep the Markdown structure and section headings.

{{.Draft}}`))}
)
