package model

import (
	"errors"
	"fmt"
	"maps"
)

// Field names with meaning to the simulator. Every other column is carried
// through unchanged.
const (
	FieldID                 = "id"
	FieldDate               = "date"
	FieldSaleDate           = "sale_date"
	FieldPrice              = "price"
	FieldEconomicConditions = "economic_conditions"
)

// ErrNoPrice is returned when a record has no usable price.
var ErrNoPrice = errors.New("record has no numeric price")

// HomeRecord is one home sale, keyed by column name.
type HomeRecord map[string]any

// Clone returns a copy of the record. Values are scalars, so a shallow copy
// of the map is a deep copy of the record.
func (r HomeRecord) Clone() HomeRecord {
	return maps.Clone(r)
}

// Price returns the record's price as a float64.
func (r HomeRecord) Price() (float64, error) {
	v, ok := r[FieldPrice]
	if !ok {
		return 0, ErrNoPrice
	}
	switch p := v.(type) {
	case float64:
		return p, nil
	case int64:
		return float64(p), nil
	case int:
		return float64(p), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrNoPrice, v, v)
	}
}

// CloneAll copies every record in the slice.
func CloneAll(records []HomeRecord) []HomeRecord {
	out := make([]HomeRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
