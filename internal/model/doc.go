// Package model defines the home-sale record shared by the loader, the
// simulator and the writers.
//
// Conventions:
//   - A record is a flat mapping of column name to value
//   - Numeric columns are int64 or float64, everything else is a string
//   - Empty source cells are nil and encode as JSON null
//   - sale_date is an ISO-8601 calendar date (YYYY-MM-DD)
package model
