package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Inputs    InputsConfig    `yaml:"inputs" envconfig:"INPUTS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Parsing   ParsingConfig   `yaml:"parsing" envconfig:"PARSING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputsConfig locates the three workbooks. An empty Quizzes path skips the
// quiz analysis.
type InputsConfig struct {
	Progress  string `yaml:"progress" envconfig:"PROGRESS" validate:"required"`
	Students  string `yaml:"students" envconfig:"STUDENTS" validate:"required"`
	Quizzes   string `yaml:"quizzes" envconfig:"QUIZZES"`
	Sheet     string `yaml:"sheet" envconfig:"SHEET"`
	HeaderRow int    `yaml:"header_row" envconfig:"HEADER_ROW" validate:"gte=0"`
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" validate:"required"`
	ExportCSV bool   `yaml:"export_csv" envconfig:"EXPORT_CSV"`
}

// ParsingConfig holds the locale-specific text rules
type ParsingConfig struct {
	DateTimeLayout string `yaml:"date_time_layout" envconfig:"DATE_TIME_LAYOUT" validate:"required"`
	DateLayout     string `yaml:"date_layout" envconfig:"DATE_LAYOUT" validate:"required"`
	PassToken      string `yaml:"pass_token" envconfig:"PASS_TOKEN" validate:"required"`
	CompletedLabel string `yaml:"completed_label" envconfig:"COMPLETED_LABEL" validate:"required"`
	ActiveLabel    string `yaml:"active_label" envconfig:"ACTIVE_LABEL" validate:"required"`
}

// ReportConfig contains chart and aggregate settings
type ReportConfig struct {
	DPI                   int      `yaml:"dpi" envconfig:"DPI" validate:"gte=72,lte=1200"`
	Width                 float64  `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height                float64  `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	TitleFontSize         float64  `yaml:"title_font_size" envconfig:"TITLE_FONT_SIZE" validate:"gt=0"`
	TopCourses            int      `yaml:"top_courses" envconfig:"TOP_COURSES" validate:"gte=1"`
	MinInstructorStudents int      `yaml:"min_instructor_students" envconfig:"MIN_INSTRUCTOR_STUDENTS" validate:"gte=1"`
	CourseLabelWidth      int      `yaml:"course_label_width" envconfig:"COURSE_LABEL_WIDTH" validate:"gte=4"`
	InstructorLabelWidth  int      `yaml:"instructor_label_width" envconfig:"INSTRUCTOR_LABEL_WIDTH" validate:"gte=4"`
	Palette               []string `yaml:"palette" envconfig:"PALETTE" validate:"min=1,dive,hexcolor"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, the optional YAML file and
// LEARNSTATS_* environment variables, in increasing precedence. An empty
// path falls back to the well-known config file locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file on cfg; keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the struct tags and fills values that have a safe fallback.
func (c *Config) Validate() error {
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogsDir + "/" + DefaultLogFile
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the first existing config file, or ""
func getConfigFilePath() string {
	locations := []string{
		"learnstats.yaml",
		"configs/learnstats.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return &Config{
		Inputs: InputsConfig{
			Progress:  DefaultProgressFile,
			Students:  DefaultStudentsPattern,
			Quizzes:   DefaultQuizFile,
			HeaderRow: DefaultHeaderRow,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Parsing: ParsingConfig{
			DateTimeLayout: DefaultDateTimeLayout,
			DateLayout:     DefaultDateLayout,
			PassToken:      DefaultPassToken,
			CompletedLabel: DefaultCompletedLabel,
			ActiveLabel:    DefaultActiveLabel,
		},
		Report: ReportConfig{
			DPI:                   DefaultDPI,
			Width:                 12,
			Height:                8,
			TitleFontSize:         16,
			TopCourses:            DefaultTopCourses,
			MinInstructorStudents: DefaultMinInstructorStudents,
			CourseLabelWidth:      DefaultCourseLabelWidth,
			InstructorLabelWidth:  DefaultInstructorLabelWidth,
			Palette:               palette,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "console",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
