package dataprocessing

// Column headers of the platform exports.
const (
	ColStudentName  = "Họ tên"
	ColEmail        = "Email"
	ColCourse       = "Khóa học"
	ColInstructor   = "Giảng viên"
	ColStartedAt    = "Ngày bắt đầu"
	ColEndedAt      = "Ngày kết thúc"
	ColProgress     = "Tiến trình học tập"
	ColOutcome      = "Kết quả học tập"
	ColPhone        = "Số điện thoại"
	ColRegisteredAt = "Ngày đăng ký"
	ColStatus       = "Trạng thái"
	ColGender       = "Giới tính"
	ColBirthYear    = "Năm sinh"
	ColProvince     = "Tỉnh/Thành phố"
	ColExam         = "Bài kiểm tra"
	ColScore        = "Điểm"
	ColResult       = "Kết quả"
	ColSubmittedAt  = "Ngày nộp bài"
	ColElapsed      = "Thời gian làm bài"
)

// Schema is the fixed column layout of one export. Required columns must be
// present in the header; optional ones read as blank when absent.
type Schema struct {
	Entity   string
	Required []string
	Optional []string
}

var (
	ProgressSchema = Schema{
		Entity:   "progress",
		Required: []string{ColStudentName, ColCourse, ColProgress, ColOutcome},
		Optional: []string{ColEmail, ColInstructor, ColStartedAt, ColEndedAt},
	}

	StudentSchema = Schema{
		Entity:   "students",
		Required: []string{ColStudentName, ColRegisteredAt, ColStatus},
		Optional: []string{ColEmail, ColPhone, ColGender, ColBirthYear, ColProvince},
	}

	QuizSchema = Schema{
		Entity:   "quizzes",
		Required: []string{ColStudentName, ColExam, ColScore, ColResult},
		Optional: []string{ColEmail, ColCourse, ColSubmittedAt, ColElapsed},
	}
)
