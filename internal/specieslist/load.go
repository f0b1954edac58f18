// Package specieslist loads batch species lists from CSV and XLSX files.
package specieslist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

// taxonRow is one input row. Files either carry a combined TaxonName
// column ("Genus species ...") or explicit Genus and Species columns.
type taxonRow struct {
	TaxonName string `csv:"TaxonName"`
	Genus     string `csv:"Genus"`
	Species   string `csv:"Species"`
}

// Load reads species queries from a CSV or XLSX file, dispatching on the
// file extension. Rows that yield no usable binomial are skipped with a
// warning rather than failing the whole file.
func Load(path string) ([]treesearch.Query, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, eris.Errorf("specieslist: unsupported file type %q", filepath.Ext(path))
	}
}

func loadCSV(path string) ([]treesearch.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "specieslist: read %s", path)
	}

	var rows []taxonRow
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "specieslist: parse %s", path)
	}

	return rowsToQueries(rows), nil
}

func loadXLSX(path string) ([]treesearch.Query, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "specieslist: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("specieslist: %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, eris.Errorf("specieslist: %s has no data rows", path)
	}

	// Header row → column indices.
	colIdx := make(map[string]int)
	for i, cell := range sheet.Rows[0].Cells {
		colIdx[strings.TrimSpace(cell.String())] = i
	}

	var rows []taxonRow
	for _, r := range sheet.Rows[1:] {
		rows = append(rows, taxonRow{
			TaxonName: cellAt(r, colIdx, "TaxonName"),
			Genus:     cellAt(r, colIdx, "Genus"),
			Species:   cellAt(r, colIdx, "Species"),
		})
	}

	return rowsToQueries(rows), nil
}

func cellAt(row *xlsx.Row, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[idx].String())
}

func rowsToQueries(rows []taxonRow) []treesearch.Query {
	var queries []treesearch.Query
	for _, row := range rows {
		genus, species := row.Genus, row.Species
		if genus == "" || species == "" {
			genus, species = splitTaxon(row.TaxonName)
		}
		if genus == "" || species == "" {
			zap.L().Warn("specieslist: skipping row without a binomial name",
				zap.String("taxon", row.TaxonName),
			)
			continue
		}
		queries = append(queries, treesearch.Query{Genus: genus, Species: species})
	}
	return queries
}

// splitTaxon takes the first two whitespace-separated tokens of a combined
// species name. Anything past the epithet (authorship, subspecies) is
// ignored.
func splitTaxon(name string) (genus, species string) {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return "", ""
	}
	return tokens[0], tokens[1]
}
