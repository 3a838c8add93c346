// Package easystats extracts the raw pieces of an EasyStats HTML export —
// title string, date text, and stat-table rows — for the box-score builder.
// It knows nothing about basketball; it only lifts text out of markup.
package easystats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prettygood/courtside/internal/ingest/boxscore"
)

// Export is the extracted raw content of one EasyStats HTML file. Rows is
// nil (not empty) when the document has no stats table, so the builder can
// tell "no table" apart from "table with no players".
type Export struct {
	Title    string
	DateText string
	Rows     []boxscore.Row
}

// ParseFile reads and extracts one export file.
func ParseFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse extracts an export from an HTML stream.
func Parse(r io.Reader) (*Export, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing export html: %w", err)
	}

	export := &Export{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		DateText: strings.TrimSpace(doc.Find("span.detail").First().Text()),
	}

	table := doc.Find("table#stats").First()
	if table.Length() == 0 {
		return export, nil
	}

	export.Rows = []boxscore.Row{}
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cols := tr.Find("td")
		if cols.Length() < 2 {
			return
		}
		row := boxscore.Row{Label: strings.TrimSpace(cols.First().Text())}
		cols.Each(func(j int, td *goquery.Selection) {
			if j == 0 {
				return
			}
			row.Cells = append(row.Cells, strings.TrimSpace(td.Text()))
		})
		export.Rows = append(export.Rows, row)
	})

	return export, nil
}
