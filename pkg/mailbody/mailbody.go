// Package mailbody extracts the displayable body representations out of a
// raw message before the unquote engine sees them: MIME part selection for
// .eml files, sanitizing for HTML input, and a derived text alternative
// when a message only ships HTML.
package mailbody

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	// Register common charsets so non-UTF-8 parts decode.
	_ "github.com/emersion/go-message/charset"
)

// Body holds the representations found in one message.
type Body struct {
	HTML string
	Text string
}

// ExtractFile reads a message file and returns its body. .eml files go
// through MIME part selection; .html/.htm and .txt files are taken as a
// single representation.
func ExtractFile(path string) (Body, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Body{}, fmt.Errorf("failed to read message: %w", err)
	}
	return ExtractRaw(path, data), nil
}

// ExtractRaw is ExtractFile for already-read content; the path only picks
// the format.
func ExtractRaw(path string, data []byte) Body {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".eml":
		return ExtractEML(data)
	case ".html", ".htm":
		return Body{HTML: string(data)}
	default:
		return Body{Text: string(data)}
	}
}

// ExtractEML picks the first text/plain and first text/html inline parts
// out of a raw RFC 5322 message. Attachments are skipped. A message that
// does not parse as MIME degrades to its raw content as plain text.
func ExtractEML(raw []byte) Body {
	var body Body
	mr, err := mail.CreateReader(strings.NewReader(string(raw)))
	if err != nil {
		return Body{Text: rawBodyFallback(string(raw))}
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		switch contentType {
		case "text/plain":
			if body.Text == "" {
				body.Text = string(content)
			}
		case "text/html":
			if body.HTML == "" {
				body.HTML = string(content)
			}
		}
	}
	if body.Text == "" && body.HTML == "" {
		body.Text = rawBodyFallback(string(raw))
	}
	return body
}

// rawBodyFallback returns everything after the header block of a message
// that failed structured parsing.
func rawBodyFallback(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if _, rest, ok := strings.Cut(raw, "\n\n"); ok {
		return rest
	}
	return raw
}

// Policy builds the sanitizer applied to HTML input before the engine runs.
// It is a UGC policy widened to keep the attributes the rule catalog
// fingerprints on: class, id, inline style, blockquote type, div name and
// data markers.
func Policy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("hr", "div", "span", "blockquote")
	p.AllowAttrs("class", "id", "style", "type", "name").Globally()
	p.AllowDataAttributes()
	return p
}

// messageURL anchors readability's relative-link resolution; the value is
// never dereferenced.
var messageURL, _ = url.Parse("https://localhost/message")

// DeriveText produces a plain-text alternative from an HTML body, for
// messages that only ship HTML. Failures degrade to an empty string rather
// than an error: the text pipeline simply has nothing to do then.
func DeriveText(htmlBody string) string {
	article, err := readability.FromReader(strings.NewReader(htmlBody), messageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}
