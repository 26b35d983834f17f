// Package app runs one report generation from start to finish.
//
// Application wires the loader, normalizer, summarizer and reporter and runs
// them as four traced stages: load, normalize, aggregate and report. Each
// stage records its duration, and the row and chart counters feed the
// Prometheus textfile written at shutdown.
//
// The package never exits the process. Execute prints the user-facing
// message of an aborted run and returns the error so that main can log it
// and end normally.
package app
