package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/homesale-sim/internal/model"
)

func TestParse_KeepsLastDuplicate(t *testing.T) {
	csv := `id,date,price
1,2020-01-01,100000
1,2020-06-01,110000
`
	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec["price"] != int64(110000) {
		t.Errorf("price = %v, want 110000", rec["price"])
	}
	if rec["sale_date"] != "2020-06-01" {
		t.Errorf("sale_date = %v, want 2020-06-01", rec["sale_date"])
	}
	if _, ok := rec["id"]; ok {
		t.Error("record still has id field")
	}
	if _, ok := rec["date"]; ok {
		t.Error("record still has date field")
	}
}

func TestParse_OrderFollowsLastOccurrence(t *testing.T) {
	csv := `id,date,price,zipcode
1,2020-01-01,100,98001
2,2020-01-02,200,98002
1,2020-01-03,300,98003
3,2020-01-04,400,98004
2,2020-01-05,500,98005
`
	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantPrices := []int64{300, 400, 500}
	if len(records) != len(wantPrices) {
		t.Fatalf("len(records) = %d, want %d", len(records), len(wantPrices))
	}
	for i, want := range wantPrices {
		if records[i]["price"] != want {
			t.Errorf("records[%d].price = %v, want %d", i, records[i]["price"], want)
		}
	}
}

func TestParse_OneRecordPerID(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,date,price\n")
	ids := []string{"5", "3", "5", "9", "3", "3", "1", "9", "05"}
	for i, id := range ids {
		b.WriteString(id + ",2021-01-01," + strings.Repeat("1", i+1) + "\n")
	}

	records, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 5 and 05 are the same integer id.
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(records))
	}
}

func TestParse_ColumnTypes(t *testing.T) {
	csv := `id,date,price,bedrooms,bathrooms,view,waterfront
1,2014-10-13,221900,3,1.0,none,
2,2014-12-09,538000.5,3,2.25,good,1
`
	records, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	first := records[0]
	if _, ok := first["price"].(float64); !ok {
		t.Errorf("price type = %T, want float64 (column has a decimal)", first["price"])
	}
	if first["bedrooms"] != int64(3) {
		t.Errorf("bedrooms = %v (%T), want int64 3", first["bedrooms"], first["bedrooms"])
	}
	if first["bathrooms"] != 1.0 {
		t.Errorf("bathrooms = %v (%T), want float64 1.0", first["bathrooms"], first["bathrooms"])
	}
	if first["view"] != "none" {
		t.Errorf("view = %v, want none", first["view"])
	}
	if first["waterfront"] != nil {
		t.Errorf("waterfront = %v, want nil for empty cell", first["waterfront"])
	}
	if records[1]["waterfront"] != int64(1) {
		t.Errorf("waterfront = %v, want 1", records[1]["waterfront"])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{
			name:    "empty input",
			csv:     "",
			wantErr: ErrNoHeader,
		},
		{
			name:    "missing id",
			csv:     "date,price\n2020-01-01,1\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing date",
			csv:     "id,price\n1,1\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "missing price",
			csv:     "id,date\n1,2020-01-01\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "text price",
			csv:     "id,date,price\n1,2020-01-01,lots\n",
			wantErr: ErrNonNumericPrice,
		},
		{
			name:    "empty price",
			csv:     "id,date,price\n1,2020-01-01,100\n2,2020-01-01,\n",
			wantErr: ErrNonNumericPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_RaggedRow(t *testing.T) {
	csv := "id,date,price\n1,2020-01-01,100,extra\n"
	if _, err := Parse(strings.NewReader(csv)); err == nil {
		t.Error("Parse() expected error for ragged row, got nil")
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader("id,date,price\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	records, err := Parse(strings.NewReader("\uFEFFid,date,price\n1,2020-01-01,5\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if _, ok := records[0]["id"]; ok {
		t.Error("record still has id field")
	}
	if records[0]["price"] != int64(5) {
		t.Errorf("price = %v, want 5", records[0]["price"])
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home_sales.csv")
	content := "id,date,price,sqft_living\n7129300520,20141013T000000,221900,1180\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0][model.FieldSaleDate] != "20141013T000000" {
		t.Errorf("sale_date = %v, want 20141013T000000", records[0][model.FieldSaleDate])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
