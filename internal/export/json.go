package export

import (
	"encoding/json"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"tagdiff/internal/diffview"
)

// Document is the JSON shape of an exported projection.
type Document struct {
	Rows      []diffview.Row `json:"rows"`
	NoMatches bool           `json:"no_matches"`
}

func NewDocument(rows []diffview.Row, noMatches bool) Document {
	if rows == nil {
		rows = []diffview.Row{}
	}
	return Document{Rows: rows, NoMatches: noMatches}
}

// JSON writes the document indented. With color set the output is
// syntax-highlighted for a 256-colour terminal.
func JSON(w io.Writer, doc Document, color bool) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if !color {
		_, err = w.Write(data)
		return err
	}
	return quick.Highlight(w, string(data), "json", "terminal256", "monokai")
}
