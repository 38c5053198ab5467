// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives an article from source collection to a stored
// document. It is a state machine: automated stages run on their own,
// choosing states wait for the user, and a "revise" verdict restarts from
// the beginning with all state discarded.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/article-engine/internal/acquire"
	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/internal/sources"
	"github.com/pdiddy/article-engine/internal/stage"
	"github.com/pdiddy/article-engine/internal/store"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Prompter asks the user for input of the given kind. options are shown
// numbered; the raw answer is returned. An error (including io.EOF) ends
// the run.
type Prompter interface {
	PromptUser(ctx context.Context, kind PromptKind, options []string) (string, error)
}

// Reporter shows progress and results to the user.
type Reporter interface {
	Step(step, total int, description string)
	Show(label, text string)
	Notice(msg string)
}

// Collector gathers page text and proposes topics.
type Collector interface {
	Collect(ctx context.Context, urls []string) (string, error)
	SuggestTopics(ctx context.Context, text string) (string, error)
}

// DraftWriter writes one section per outline line.
type DraftWriter interface {
	Write(ctx context.Context, topic, outline string) (types.Draft, error)
}

// DraftRefiner polishes a draft.
type DraftRefiner interface {
	Refine(ctx context.Context, d types.Draft) (string, error)
}

// DocumentStore assembles and persists the finished article.
type DocumentStore interface {
	Prepare(title, content string, opts ...store.SaveOption) (store.Prepared, error)
	Write(p store.Prepared) (types.StoredDocument, error)
}

// Recorder appends a finished run to the history ledger.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) (int64, error)
}

// FeedLinker resolves a feed URL into source URLs.
type FeedLinker interface {
	Links(ctx context.Context, feedURL string) ([]string, error)
}

// RunError reports the state in which a run failed.
type RunError struct {
	State State
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pipeline failed while %s: %v", e.State, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Deps bundles the collaborators of a Driver. History and Feeds may be nil.
type Deps struct {
	Prompter  Prompter
	Reporter  Reporter
	Collector Collector
	Client    completion.Client
	Writer    DraftWriter
	Refiner   DraftRefiner
	Store     DocumentStore
	History   Recorder
	Feeds     FeedLinker
	Log       logrus.FieldLogger
}

// Driver runs the pipeline. It is single-use per Run call and not safe for
// concurrent use.
type Driver struct {
	deps    Deps
	opts    types.PipelineOptions
	writing types.WritingConfig
	presets []types.Preset
}

// New returns a Driver for cfg.
func New(deps Deps, cfg types.Config) *Driver {
	presets := cfg.Collection.Presets
	if len(presets) == 0 {
		presets = types.DefaultPresets
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	return &Driver{
		deps:    deps,
		opts:    cfg.Pipeline,
		writing: cfg.Writing,
		presets: presets,
	}
}

// run holds everything produced by one pass through the pipeline. A restart
// replaces it with a fresh value.
type run struct {
	urls        []string
	text        string
	topics      string
	topic       string
	titles      string
	title       string
	articleType string
	style       string
	outlines    string
	outline     string
	draft       types.Draft
	article     string
	refined     bool
	prepared    store.Prepared
	doc         types.StoredDocument
}

// Run executes the pipeline until the user is satisfied and returns the
// stored document.
func (d *Driver) Run(ctx context.Context) (types.StoredDocument, error) {
	var (
		r        = &run{}
		state    = StateCollectingSources
		restarts int
		lastStep int
	)

	for state != StateDone {
		if err := ctx.Err(); err != nil {
			return types.StoredDocument{}, &RunError{State: state, Err: err}
		}
		if step := state.Step(); step != lastStep {
			d.deps.Reporter.Step(step, TotalSteps, StepDescription(step))
			lastStep = step
		}
		d.deps.Log.WithField("state", state).Debug("entering state")

		next, err := d.step(ctx, state, r, restarts)
		if err != nil {
			return types.StoredDocument{}, &RunError{State: state, Err: err}
		}

		if state == StateReviewing && next == StateCollectingSources {
			restarts++
			r = &run{}
			lastStep = 0
			d.deps.Log.WithField("restarts", restarts).Info("restarting pipeline")
		}
		state = next
	}
	return r.doc, nil
}

// step performs the work of one state and returns the next state.
func (d *Driver) step(ctx context.Context, state State, r *run, restarts int) (State, error) {
	switch state {
	case StateCollectingSources:
		urls, err := d.chooseSources(ctx)
		if err != nil {
			return state, err
		}
		r.urls = urls
		text, err := d.deps.Collector.Collect(ctx, urls)
		if err != nil {
			return state, err
		}
		r.text = text
		return StateSuggestingTopics, nil

	case StateSuggestingTopics:
		topics, err := d.deps.Collector.SuggestTopics(ctx, r.text)
		if err != nil {
			return state, err
		}
		r.topics = topics
		if topics == acquire.NoContentSentinel {
			d.deps.Reporter.Notice(topics + " Type a topic of your own.")
		}
		return StateChoosingTopic, nil

	case StateChoosingTopic:
		var options []string
		if r.topics != acquire.NoContentSentinel {
			options = SuggestionOptions(r.topics)
		}
		topic, err := d.choose(ctx, PromptTopic, options)
		if err != nil {
			return state, err
		}
		r.topic = topic
		return StateGeneratingTitles, nil

	case StateGeneratingTitles:
		titles, err := stage.Titles.Generate(ctx, d.deps.Client, stage.TitleInputs{
			Topic:    r.topic,
			Count:    d.writing.TitleCount,
			Language: d.writing.Language,
		})
		if err != nil {
			return state, err
		}
		r.titles = titles
		return StateChoosingTitle, nil

	case StateChoosingTitle:
		title, err := d.choose(ctx, PromptTitle, SuggestionOptions(r.titles))
		if err != nil {
			return state, err
		}
		r.title = title
		if r.articleType, err = d.choose(ctx, PromptArticleType, nil); err != nil {
			return state, err
		}
		if r.style, err = d.choose(ctx, PromptArticleStyle, nil); err != nil {
			return state, err
		}
		return StateGeneratingOutlines, nil

	case StateGeneratingOutlines:
		outlines, err := stage.Outlines.Generate(ctx, d.deps.Client, stage.OutlineInputs{
			Topic:       r.topic,
			Title:       r.title,
			ArticleType: r.articleType,
			Style:       r.style,
			Count:       d.writing.OutlineCount,
			Language:    d.writing.Language,
		})
		if err != nil {
			return state, err
		}
		r.outlines = outlines
		return StateChoosingOutline, nil

	case StateChoosingOutline:
		options := OutlineOptions(r.outlines)
		outline, err := d.choose(ctx, PromptOutline, options)
		if err != nil {
			return state, err
		}
		if !slices.Contains(options, outline) {
			outline = TypedOutline(outline)
		}
		r.outline = outline
		return StateWriting, nil

	case StateWriting:
		draft, err := d.deps.Writer.Write(ctx, r.topic, r.outline)
		if err != nil {
			return state, err
		}
		if len(draft.Skipped) > 0 {
			d.deps.Reporter.Notice(fmt.Sprintf("Skipped %d section(s): %s", len(draft.Skipped), strings.Join(draft.Skipped, ", ")))
		}
		if draft.Empty() {
			d.deps.Reporter.Notice("No sections were written; choose another outline.")
			return StateChoosingOutline, nil
		}
		r.draft = draft
		return StateRefining, nil

	case StateRefining:
		article, err := d.deps.Refiner.Refine(ctx, r.draft)
		if err != nil {
			if !d.opts.RefineFallback {
				return state, err
			}
			d.deps.Log.WithField("state", state).Warnf("refinement failed, storing unrefined draft: %v", err)
			d.deps.Reporter.Notice("Refinement failed; the unrefined draft will be saved.")
			r.article = r.draft.Markdown()
			return StatePreparing, nil
		}
		r.article = article
		r.refined = true
		return StatePreparing, nil

	case StatePreparing:
		p, err := d.deps.Store.Prepare(r.title, r.article, store.WithTopic(r.topic), store.WithSources(r.urls))
		if err != nil {
			return state, err
		}
		r.prepared = p
		d.deps.Reporter.Notice(fmt.Sprintf("Prepared %s (%d bytes)", filepath.Base(p.Path), len(p.Data)))
		return StateStoring, nil

	case StateStoring:
		doc, err := d.deps.Store.Write(r.prepared)
		if err != nil {
			return state, err
		}
		r.doc = doc
		d.deps.Reporter.Notice("Article saved to " + doc.Path)
		d.record(ctx, r, restarts)
		return StateReviewing, nil

	case StateReviewing:
		d.deps.Reporter.Show(r.title, r.doc.Content)
		return d.review(ctx, restarts)
	}
	return state, fmt.Errorf("unknown state %v", state)
}

// chooseSources prompts until the user supplies a valid source list. Bad
// input, unreadable files and unreachable feeds are reported and asked
// again.
func (d *Driver) chooseSources(ctx context.Context) ([]string, error) {
	modes := make([]string, len(sources.Modes))
	for i, m := range sources.Modes {
		modes[i] = m.String()
	}
	for {
		answer, err := d.deps.Prompter.PromptUser(ctx, PromptSourceMode, modes)
		if err != nil {
			return nil, err
		}
		mode, err := sources.ParseMode(answer)
		if err != nil {
			d.deps.Reporter.Notice(err.Error())
			continue
		}

		urls, err := d.resolveSources(ctx, mode)
		if err != nil {
			if isPromptError(err) {
				return nil, err
			}
			d.deps.Reporter.Notice(err.Error())
			continue
		}
		return urls, nil
	}
}

// promptError marks failures of the Prompter itself so they end the run
// instead of re-prompting.
type promptError struct{ err error }

func (e *promptError) Error() string { return e.err.Error() }
func (e *promptError) Unwrap() error { return e.err }

func isPromptError(err error) bool {
	var pe *promptError
	return errors.As(err, &pe)
}

func (d *Driver) ask(ctx context.Context, kind PromptKind, options []string) (string, error) {
	answer, err := d.deps.Prompter.PromptUser(ctx, kind, options)
	if err != nil {
		return "", &promptError{err: err}
	}
	return answer, nil
}

func (d *Driver) resolveSources(ctx context.Context, mode sources.Mode) ([]string, error) {
	switch mode {
	case sources.ModeList:
		answer, err := d.ask(ctx, PromptSourceList, nil)
		if err != nil {
			return nil, err
		}
		return sources.ParseList(answer)
	case sources.ModePreset:
		names := make([]string, len(d.presets))
		for i, p := range d.presets {
			names[i] = fmt.Sprintf("%s (%s)", p.Name, p.URL)
		}
		answer, err := d.ask(ctx, PromptPresets, names)
		if err != nil {
			return nil, err
		}
		return sources.SelectPresets(d.presets, answer)
	case sources.ModeFile:
		answer, err := d.ask(ctx, PromptSourceFile, nil)
		if err != nil {
			return nil, err
		}
		return sources.ReadFile(strings.TrimSpace(answer))
	case sources.ModeFeed:
		if d.deps.Feeds == nil {
			return nil, errors.New("feed input is not available")
		}
		answer, err := d.ask(ctx, PromptFeedURL, nil)
		if err != nil {
			return nil, err
		}
		feedURL, err := acquire.EnsureScheme(answer)
		if err != nil {
			return nil, err
		}
		return d.deps.Feeds.Links(ctx, feedURL)
	}
	return nil, fmt.Errorf("unknown source mode %v", mode)
}

// choose prompts for kind until the answer resolves to a non-empty choice.
func (d *Driver) choose(ctx context.Context, kind PromptKind, options []string) (string, error) {
	for {
		answer, err := d.deps.Prompter.PromptUser(ctx, kind, options)
		if err != nil {
			return "", err
		}
		if choice, ok := Select(answer, options); ok {
			return choice, nil
		}
		d.deps.Reporter.Notice("Please enter a number or some text.")
	}
}

// review asks for the verdict until it is recognised.
func (d *Driver) review(ctx context.Context, restarts int) (State, error) {
	for {
		answer, err := d.deps.Prompter.PromptUser(ctx, PromptFeedback, []string{"satisfied", "revise"})
		if err != nil {
			return StateReviewing, err
		}
		switch ParseFeedback(answer) {
		case FeedbackSatisfied:
			return StateDone, nil
		case FeedbackRevise:
			if d.opts.MaxRestarts > 0 && restarts >= d.opts.MaxRestarts {
				d.deps.Reporter.Notice(fmt.Sprintf("Restart limit (%d) reached; keeping the current article.", d.opts.MaxRestarts))
				return StateDone, nil
			}
			return StateCollectingSources, nil
		default:
			d.deps.Reporter.Notice(`Please answer "satisfied" or "revise".`)
		}
	}
}

// record appends the run to the history ledger. Failures are logged only.
func (d *Driver) record(ctx context.Context, r *run, restarts int) {
	if d.deps.History == nil {
		return
	}
	_, err := d.deps.History.Record(ctx, types.RunRecord{
		Title:     r.title,
		Topic:     r.topic,
		Path:      r.doc.Path,
		Sources:   r.urls,
		Sections:  len(r.draft.Sections),
		Skipped:   len(r.draft.Skipped),
		Refined:   r.refined,
		Restarts:  restarts,
		CreatedAt: r.doc.CreatedAt,
	})
	if err != nil {
		d.deps.Log.WithField("path", r.doc.Path).Warnf("recording history: %v", err)
	}
}
