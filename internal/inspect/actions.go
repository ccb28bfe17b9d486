// Package inspect implements the diagnostic CLI command: run detection over
// a message and report which rule fired, without transforming anything
// beyond what the strip output would show.
package inspect

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/mail-unquote/internal/batch"
	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/mailbody"
	"github.com/dtnitsch/mail-unquote/pkg/unquote"
)

// Report is the yaml document inspect prints per message.
type Report struct {
	Source   string             `yaml:"source"`
	Language string             `yaml:"language,omitempty"`
	HTML     *RepresentationRow `yaml:"html,omitempty"`
	Text     *RepresentationRow `yaml:"text,omitempty"`
}

// RepresentationRow summarizes detection on one representation.
type RepresentationRow struct {
	Matched  bool   `yaml:"matched"`
	Rule     string `yaml:"rule,omitempty"`
	Boundary string `yaml:"boundary,omitempty"`
}

// InspectAction runs detection over one or more message files and prints a
// yaml report per file.
func InspectAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if c.Args().Len() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No message files provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mail-unquote inspect message.eml other.html")
		os.Exit(1)
	}

	opts := models.Options{
		Mode:               models.ModeWrap,
		IgnoreFirstForward: c.Bool("ignore-first-forward"),
	}
	policy := mailbody.Policy()
	detector := batch.NewDetector()

	var failed int
	for _, path := range c.Args().Slice() {
		body, err := mailbody.ExtractFile(path)
		if err != nil {
			logger.Error("failed to read message", "error", err, "path", path)
			failed++
			continue
		}
		htmlBody := body.HTML
		if htmlBody != "" {
			htmlBody = policy.Sanitize(htmlBody)
		}

		uq := unquote.New(htmlBody, body.Text, opts)
		report := Report{Source: path}
		var output batch.Output
		if htmlBody != "" {
			res := uq.HTML()
			output.HTML = &res
			report.HTML = row(res)
		}
		if body.Text != "" {
			res := uq.Text()
			output.Text = &res
			report.Text = row(res)
		}
		report.Language = batch.AuthoredLanguage(detector, output)

		data, err := yaml.Marshal(report)
		if err != nil {
			logger.Error("failed to marshal report", "error", err, "path", path)
			failed++
			continue
		}
		fmt.Printf("---\n%s", data)
	}

	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func row(result models.Result) *RepresentationRow {
	r := &RepresentationRow{Matched: result.Matched(), Rule: result.Rule}
	if result.Matched() {
		r.Boundary = result.Boundary.String()
	}
	return r
}
