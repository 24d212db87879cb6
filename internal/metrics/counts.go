package metrics

import (
	"strings"
	"unicode/utf8"

	"github.com/petasbytes/genie-annotate/internal/space"
)

// Text holds size counters for a piece of free text such as a description.
type Text struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
}

// CountText computes byte, rune and word counts for s. Words split on Unicode whitespace.
func CountText(s string) Text {
	return Text{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
}

// Document summarises the tables and columns of a serialized space.
type Document struct {
	Tables           int `json:"tables"`
	Columns          int `json:"columns"`
	DescribedColumns int `json:"described_columns"`
	DescriptionLines int `json:"description_lines"`
}

// CountDocument walks the typed table view. A column counts as described when
// its description list is non-empty.
func CountDocument(tables []space.Table) Document {
	var d Document
	d.Tables = len(tables)
	for _, t := range tables {
		d.Columns += len(t.ColumnConfigs)
		for _, c := range t.ColumnConfigs {
			if len(c.Description) > 0 {
				d.DescribedColumns++
			}
			d.DescriptionLines += len(c.Description)
		}
	}
	return d
}
