package domain

// Snapshot is the normalized, read-only input of one run.
type Snapshot struct {
	Enrollments []EnrollmentRecord `json:"enrollments"`
	Students    []StudentRecord    `json:"students"`
	Quizzes     []QuizResult       `json:"quizzes"`
}
