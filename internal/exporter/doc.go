// Package exporter renders a dataprocessing.Report for people.
//
// Renderer draws the four PNG figures with gonum/plot, CSVWriter encodes the
// aggregate tables, and SummaryWriter prints the console overview. Reporter
// ties the first two to a files.Manager so that a run either saves every
// artifact or none of them.
//
// Example usage:
//
//	renderer := exporter.NewRenderer(exporter.DefaultChartConfig(), logger)
//	reporter := exporter.NewReporter(renderer, files.NewManager("charts", logger), false, logger)
//	paths, err := reporter.Export(ctx, report)
package exporter
