// Package dataprocessing turns the platform's xlsx exports into report
// numbers.
//
// # Stages
//
//  1. Loader reads each workbook with excelize. The first row is a title, the
//     second the header. Columns are checked against a fixed Schema per export.
//  2. Normalizer converts text cells into domain records. Percentages, score
//     fractions and durations that do not parse become missing values; a
//     malformed timestamp aborts the run.
//  3. Summarizer computes every aggregate into a Report using the pure
//     functions in aggregate.go.
//
// # Usage
//
//	loader := dataprocessing.NewLoader(".", logger)
//	tables, err := loader.LoadAll(ctx, dataprocessing.Inputs{
//	    Progress: "tien_trinh_hoc_tap.xlsx",
//	    Students: "Danh_sach_hoc_vien_tham_gia_*.xlsx",
//	    Options:  dataprocessing.LoadOptions{HeaderRow: 1},
//	})
//
//	snap, stats, err := dataprocessing.NewNormalizer(opts, logger).NormalizeAll(ctx, tables)
//	report, err := dataprocessing.NewSummarizer(reportOpts, logger).BuildReport(ctx, snap)
package dataprocessing
