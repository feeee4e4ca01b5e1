// Package loader reads the historical home-sale CSV into records.
//
// Rows sharing an id are collapsed to the last one in file order. The id
// column is dropped and date is renamed to sale_date.
package loader
