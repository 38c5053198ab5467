// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/acquire"
	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/internal/console"
	"github.com/pdiddy/article-engine/internal/draft"
	"github.com/pdiddy/article-engine/internal/history"
	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/internal/logging"
	"github.com/pdiddy/article-engine/internal/pipeline"
	"github.com/pdiddy/article-engine/internal/refine"
	"github.com/pdiddy/article-engine/internal/sources"
	"github.com/pdiddy/article-engine/internal/store"
	"github.com/pdiddy/article-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive article pipeline",
	Long: `Run walks through the eight pipeline steps: collect sources and suggest
topics, choose a title, design the outline, write the sections, refine the
article, prepare and save the Markdown document, and review the result.

Sources can be typed as a URL list, picked from preset sites, read from a
file with one URL per line, or taken from an RSS/Atom feed. Between one and
ten sources are required.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps, cleanup, err := buildDeps(cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := pipeline.New(deps, cfg).Run(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stdout, "\nInput closed before the article was finished.")
		}
		log.WithError(err).Error("article run failed")
		return err
	}

	fmt.Fprintf(os.Stdout, "\nDone. %q saved to %s\n", doc.Title, doc.Path)
	if doc.HTMLPath != "" {
		fmt.Fprintf(os.Stdout, "HTML rendering: %s\n", doc.HTMLPath)
	}
	return nil
}

// buildDeps constructs every pipeline collaborator from cfg. The returned
// cleanup closes the history database.
func buildDeps(cfg types.Config, log *logrus.Logger, in io.Reader, out io.Writer) (pipeline.Deps, func(), error) {
	cleanup := func() {}

	httpClient := httputil.NewClient(cfg.Collection.HTTPConfig)
	extractor, err := acquire.NewExtractor(cfg.Collection.Extractor)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}
	fetcher := acquire.NewPageFetcher(httpClient, extractor, cfg.Collection.HTTPConfig)

	llm, err := completion.NewOpenAIClient(cfg.LLM, log)
	if err != nil {
		return pipeline.Deps{}, cleanup, err
	}
	client := completion.NewLimited(llm, cfg.LLM.RequestsPerMinute)

	term := console.New(in, out)
	deps := pipeline.Deps{
		Prompter:  term,
		Reporter:  term,
		Collector: acquire.NewAggregator(fetcher, client, cfg.Collection.OnError, cfg.Writing, log),
		Client:    client,
		Writer:    draft.NewWriter(client, cfg.Writing, log),
		Refiner:   refine.NewRefiner(client, cfg.Writing.Language),
		Store:     store.NewStore(cfg.Store, nil, log),
		Feeds:     sources.NewFeedReader(httpClient, cfg.Collection.UserAgent),
		Log:       log,
	}

	if cfg.Store.HistoryDB != "" {
		h, err := history.NewStore(cfg.Store.HistoryDB)
		if err != nil {
			log.WithField("path", cfg.Store.HistoryDB).Warnf("history disabled: %v", err)
		} else {
			deps.History = h
			cleanup = func() { h.Close() }
		}
	}
	return deps, cleanup, nil
}
