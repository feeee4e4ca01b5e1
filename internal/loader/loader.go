package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rickgao/homesale-sim/internal/model"
)

var (
	// ErrNoHeader is returned for an empty source.
	ErrNoHeader = errors.New("csv has no header row")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNonNumericPrice is returned when a price cell is empty or not a number.
	ErrNonNumericPrice = errors.New("price is not numeric")
)

// requiredColumns must appear in the header.
var requiredColumns = []string{model.FieldID, model.FieldDate, model.FieldPrice}

// Load reads and deduplicates the CSV at path.
func Load(path string) ([]model.HomeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open home sales csv: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// utf8BOM is written at the start of CSV files by some spreadsheet exports.
const utf8BOM = "\uFEFF"

// Parse reads CSV rows from r and returns one record per distinct id, in the
// order the kept rows appear in the source.
func Parse(r io.Reader) ([]model.HomeRecord, error) {
	rows, err := gocsv.LazyCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(rows[0]))
	index := make(map[string]int, len(header))
	for i, name := range rows[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		header[i] = name
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	body := rows[1:]
	kinds := inferKinds(len(header), body)

	idCol := index[model.FieldID]
	priceCol := index[model.FieldPrice]

	// Last row index for every id, keyed by the typed id value so "7" and
	// "07" collapse together in an integer column.
	last := make(map[any]int, len(body))
	for i, row := range body {
		last[convert(row[idCol], kinds[idCol])] = i
	}

	records := make([]model.HomeRecord, 0, len(last))
	for i, row := range body {
		if last[convert(row[idCol], kinds[idCol])] != i {
			continue
		}
		if kinds[priceCol] == kindString || strings.TrimSpace(row[priceCol]) == "" {
			return nil, fmt.Errorf("row %d: %w: %q", i+2, ErrNonNumericPrice, row[priceCol])
		}

		rec := make(model.HomeRecord, len(header))
		for col, name := range header {
			switch name {
			case model.FieldID:
				continue
			case model.FieldDate:
				name = model.FieldSaleDate
			}
			rec[name] = convert(row[col], kinds[col])
		}
		records = append(records, rec)
	}

	return records, nil
}

type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindString
)

// inferKinds picks the narrowest type every non-empty cell in a column fits.
func inferKinds(width int, rows [][]string) []columnKind {
	kinds := make([]columnKind, width)
	for _, row := range rows {
		for col, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" || kinds[col] == kindString {
				continue
			}
			if kinds[col] == kindInt {
				if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
					continue
				}
				kinds[col] = kindFloat
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				kinds[col] = kindString
			}
		}
	}
	return kinds
}

func convert(cell string, kind columnKind) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	switch kind {
	case kindInt:
		v, _ := strconv.ParseInt(trimmed, 10, 64)
		return v
	case kindFloat:
		v, _ := strconv.ParseFloat(trimmed, 64)
		return v
	default:
		return cell
	}
}
