// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console is the terminal front end of the pipeline. It asks
// questions on a line-oriented reader and prints progress, notices, and
// finished articles to a writer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/article-engine/internal/pipeline"
)

const ruleWidth = 50

// Console implements pipeline.Prompter and pipeline.Reporter.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// PromptUser prints the numbered options and the question for kind, then
// reads one line. The read blocks; ctx is only checked before prompting.
// io.EOF is returned when input ends before any text is read.
func (c *Console) PromptUser(ctx context.Context, kind pipeline.PromptKind, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(options) > 0 {
		fmt.Fprintln(c.out)
		for i, opt := range options {
			fmt.Fprintf(c.out, "%2d. %s\n", i+1, indent(opt))
		}
	}
	fmt.Fprintf(c.out, "%s ", kind.Question())

	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// indent aligns continuation lines of a multi-line option under its text.
func indent(opt string) string {
	return strings.ReplaceAll(strings.TrimSpace(opt), "\n", "\n    ")
}

// Step prints a progress header.
func (c *Console) Step(step, total int, description string) {
	pct := 0.0
	if total > 0 {
		pct = float64(step) / float64(total) * 100
	}
	fmt.Fprintf(c.out, "\n[%d/%d] %s - %.1f%%\n", step, total, description, pct)
	fmt.Fprintln(c.out, strings.Repeat("-", ruleWidth))
}

// Show prints text under a label.
func (c *Console) Show(label, text string) {
	fmt.Fprintf(c.out, "\n=== %s ===\n\n%s\n", label, strings.TrimRight(text, "\n"))
}

// Notice prints a one-line message.
func (c *Console) Notice(msg string) {
	fmt.Fprintf(c.out, "> %s\n", msg)
}

var (
	_ pipeline.Prompter = (*Console)(nil)
	_ pipeline.Reporter = (*Console)(nil)
)
