package config

// Application constants
const (
	AppName   = "learnstats"
	EnvPrefix = "LEARNSTATS"

	// Default inputs, relative to the working directory. The roster export is
	// stamped with its export date, so the default is a pattern.
	DefaultProgressFile    = "tien_trinh_hoc_tap.xlsx"
	DefaultStudentsPattern = "Danh_sach_hoc_vien_tham_gia_*.xlsx"
	DefaultQuizFile        = "ket_qua_bai_kiem_tra.xlsx"

	// Exports carry one title row before the header.
	DefaultHeaderRow = 1

	DefaultOutputDir = "charts"
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "learnstats.log"

	// Timestamps in the exports look like 18/06/2025 14:05:09.
	DefaultDateTimeLayout = "02/01/2006 15:04:05"
	DefaultDateLayout     = "02/01/2006"

	DefaultPassToken      = "Đạt"
	DefaultCompletedLabel = "Hoàn thành"
	DefaultActiveLabel    = "Hoạt động"
	DefaultFailLabel      = "Không đạt"

	DefaultDPI                   = 300
	DefaultTopCourses            = 10
	DefaultMinInstructorStudents = 2
	DefaultCourseLabelWidth      = 30
	DefaultInstructorLabelWidth  = 15
)

// DefaultPalette is the bar/pie color cycle.
var DefaultPalette = []string{"#ff6b6b", "#ffa726", "#ffca28", "#66bb6a", "#42a5f5", "#26c6da", "#a29bfe", "#fd79a8"}
