package domain

import "time"

// QuizResult is one graded quiz submission.
type QuizResult struct {
	StudentName string     `json:"student_name" validate:"required"`
	Email       string     `json:"email,omitempty"`
	Exam        string     `json:"exam" validate:"required"`
	Course      string     `json:"course,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	RawScore    string     `json:"raw_score"`
	Score       Fraction   `json:"score"`
	ResultLabel string     `json:"result_label"`
	Passed      bool       `json:"passed"`
	Elapsed     Elapsed    `json:"elapsed"`
}

// ScorePercent is the score as a percentage of the total.
func (q QuizResult) ScorePercent() (float64, bool) {
	return q.Score.Ratio()
}
