// Package strip implements the single-message CLI command: read one message,
// fold its quoted content, print the result.
package strip

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/mail-unquote/models"
	"github.com/dtnitsch/mail-unquote/pkg/mailbody"
	"github.com/dtnitsch/mail-unquote/pkg/unquote"
)

// StripAction reads one message (file argument, or stdin with "-") and
// prints the body with its quoted region folded. With --quoted it prints
// the quoted region instead.
func StripAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	path := c.Args().First()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: No message file provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mail-unquote strip message.eml")
		fmt.Fprintln(os.Stderr, "  cat body.html | mail-unquote strip --format html -")
		os.Exit(1)
	}

	body, err := readBody(c, path)
	if err != nil {
		logger.Error("failed to read message", "error", err, "path", path)
		os.Exit(2)
	}

	htmlBody := body.HTML
	if htmlBody != "" {
		htmlBody = mailbody.Policy().Sanitize(htmlBody)
	}

	opts := models.Options{
		Mode:               models.ModeWrap,
		IgnoreFirstForward: c.Bool("ignore-first-forward"),
	}
	uq := unquote.New(htmlBody, body.Text, opts)

	var result models.Result
	if htmlBody != "" && !c.Bool("text") {
		result = uq.HTML()
	} else {
		result = uq.Text()
	}

	if c.Bool("quoted") {
		fmt.Println(result.Quoted)
		return nil
	}
	fmt.Println(result.Content)
	return nil
}

// readBody loads the message body from a file or, for "-", from stdin. The
// --format flag picks the representation for stdin input.
func readBody(c *cli.Context, path string) (mailbody.Body, error) {
	if path != "-" {
		return mailbody.ExtractFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return mailbody.Body{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	switch c.String("format") {
	case "html":
		return mailbody.Body{HTML: string(data)}, nil
	case "eml":
		return mailbody.ExtractEML(data), nil
	default:
		return mailbody.Body{Text: string(data)}, nil
	}
}
