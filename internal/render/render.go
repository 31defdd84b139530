// Package render formats ranked word lists for humans and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
)

// Column widths of the plain table.
const (
	TableWidth  = 45
	WordWidth   = 25
	CountWidth  = 20
	EmptyNotice = "No words to analyze found!"
)

// Center pads s with spaces so that it sits in the middle of width columns.
// Extra padding goes to the right.
func Center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Table writes title centered above one row per entry. When empty is true the
// notice is written instead.
func Table(w io.Writer, title string, top domain.TopList, empty bool) error {
	if empty {
		_, err := fmt.Fprintln(w, EmptyNotice)
		return err
	}

	if _, err := fmt.Fprintln(w, Center(title, TableWidth)); err != nil {
		return err
	}
	for _, e := range top {
		if _, err := fmt.Fprintf(w, "%-*s %*d\n", WordWidth, e.Word, CountWidth, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// Document is the JSON shape of a ranked list.
type Document struct {
	Title string         `json:"title"`
	Empty bool           `json:"empty"`
	Words domain.TopList `json:"words"`
	Files []FileDocument `json:"files,omitempty"`
}

// FileDocument is the JSON shape of one file outcome.
type FileDocument struct {
	Name     string `json:"name"`
	Tokens   int    `json:"tokens"`
	Bytes    int64  `json:"bytes"`
	Encoding string `json:"encoding,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewDocument assembles a Document.
func NewDocument(title string, top domain.TopList, empty bool, files []domain.FileResult) Document {
	if top == nil {
		top = domain.TopList{}
	}
	doc := Document{Title: title, Empty: empty, Words: top}
	for _, f := range files {
		doc.Files = append(doc.Files, FileDocument{
			Name:     f.Name,
			Tokens:   f.Tokens,
			Bytes:    f.Bytes,
			Encoding: f.Encoding,
			Error:    f.ErrMessage(),
		})
	}
	return doc
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
