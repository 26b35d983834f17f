package domain

import "time"

// EnrollmentStatus is the normalized outcome of one course enrollment.
type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentPassed     EnrollmentStatus = "passed"
	EnrollmentFailed     EnrollmentStatus = "failed"
	EnrollmentOther      EnrollmentStatus = "other"
)

// EnrollmentRecord is one row of the learning-progress export.
type EnrollmentRecord struct {
	StudentName string           `json:"student_name" validate:"required"`
	Email       string           `json:"email,omitempty"`
	Course      string           `json:"course" validate:"required"`
	Instructor  string           `json:"instructor,omitempty"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	EndedAt     *time.Time       `json:"ended_at,omitempty"`
	Progress    Percent          `json:"progress"`
	StatusLabel string           `json:"status_label"`
	Status      EnrollmentStatus `json:"status"`
}

var enrollmentStatuses = map[string]EnrollmentStatus{
	"Hoàn thành":      EnrollmentPassed,
	"Đạt":             EnrollmentPassed,
	"Đang học":        EnrollmentInProgress,
	"Không đạt":       EnrollmentFailed,
	"Chưa hoàn thành": EnrollmentFailed,
	"Trượt":           EnrollmentFailed,
}

// ClassifyEnrollment maps the exported outcome label to a status.
func ClassifyEnrollment(label string) EnrollmentStatus {
	if s, ok := enrollmentStatuses[label]; ok {
		return s
	}
	return EnrollmentOther
}
