// Package config provides the configuration of the learning statistics
// reporter.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML file (learnstats.yaml or configs/learnstats.yaml)
//	3. Default values (lowest priority)
//
// Command-line flags of cmd/learnstats are applied on top by the caller.
//
// # Environment Variables
//
// All environment variables use the LEARNSTATS_ prefix followed by the
// section and the field:
//
//	LEARNSTATS_INPUTS_PROGRESS=tien_trinh_hoc_tap.xlsx
//	LEARNSTATS_OUTPUT_DIR=charts
//	LEARNSTATS_REPORT_DPI=300
//	LEARNSTATS_LOGGING_LEVEL=debug
//	LEARNSTATS_TELEMETRY_METRICS_FILE=learnstats.prom
//
// # Validation
//
// Load validates struct tags with go-playground/validator, so an unknown log
// level or a malformed palette color fails before any workbook is opened.
package config
