// Package shared holds helpers used by more than one package of the reporter.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on structured logs
//	- workbook fixtures written with excelize in the export layout
//	  (one preamble row, then the header row, then data rows)
//
// Nothing here carries business logic.
package shared
