// Package deck implements the document text source: page-ordered text
// extraction from pitch deck PDFs.
package deck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// UnreadableDocumentError indicates the deck file could not be opened or
// decoded at all. Pages that merely lack extractable text do not trigger it.
type UnreadableDocumentError struct {
	Path string
	Err  error
}

func (e *UnreadableDocumentError) Error() string {
	return fmt.Sprintf("unreadable document %s: %v", e.Path, e.Err)
}

func (e *UnreadableDocumentError) Unwrap() error { return e.Err }

// Deck holds the page-ordered text of a parsed pitch deck
type Deck struct {
	Filename string
	Title    string   // Document metadata title, may be empty
	Pages    []string // One entry per page; empty string for image-only pages
}

// FullText joins all pages for whole-deck prompts.
func (d *Deck) FullText() string {
	return strings.Join(d.Pages, "\n\n")
}

var (
	whitespaceRe  = regexp.MustCompile(`[ \t]+`)
	controlRe     = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
	skipNameWords = []string{"confidential", "pitch deck", "presentation", "investor deck"}
)

// Parser extracts text from pitch deck PDFs
type Parser struct{}

// NewParser creates a new deck parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a PDF and returns its page-ordered text. Pages with no
// extractable text yield empty strings rather than failing the document.
func (p *Parser) Parse(path string) (*Deck, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &UnreadableDocumentError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	d := &Deck{Filename: filepath.Base(path)}
	if title := r.Trailer().Key("Info").Key("Title"); !title.IsNull() {
		d.Title = cleanText(title.Text())
	}

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			d.Pages = append(d.Pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Degraded page (images, broken fonts): keep the slot empty
			d.Pages = append(d.Pages, "")
			continue
		}
		d.Pages = append(d.Pages, cleanText(text))
	}

	return d, nil
}

// cleanText normalizes extracted page text
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = controlRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CompanyName guesses the company name: the metadata title if present,
// otherwise the first short line on page one that is not boilerplate.
func (d *Deck) CompanyName() string {
	if title := strings.TrimSpace(d.Title); title != "" && !boilerplate(title) {
		return title
	}

	if len(d.Pages) > 0 {
		for _, line := range strings.Split(d.Pages[0], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || len(line) >= 50 {
				continue
			}
			if !boilerplate(line) {
				return line
			}
		}
	}

	return "Unknown Company"
}

// boilerplate reports whether a candidate name is deck boilerplate
// rather than a company name, e.g. an exporter's default document title.
func boilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range skipNameWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
