package domain

import "time"

// Percent is a parsed percentage in [0,100]. Valid is false when the source
// text could not be parsed or fell outside the range; such values are missing,
// not zero.
type Percent struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewPercent returns a valid percentage.
func NewPercent(v float64) Percent {
	return Percent{Value: v, Valid: true}
}

// Fraction is a "<score>/<total>" pair. Both halves are missing together.
type Fraction struct {
	Score float64 `json:"score"`
	Total float64 `json:"total"`
	Valid bool    `json:"valid"`
}

// Ratio returns 100*score/total, or false when the fraction is missing or the
// total is zero.
func (f Fraction) Ratio() (float64, bool) {
	if !f.Valid || f.Total <= 0 {
		return 0, false
	}
	return 100 * f.Score / f.Total, true
}

// Elapsed is a parsed time-on-task.
type Elapsed struct {
	Duration time.Duration `json:"duration"`
	Valid    bool          `json:"valid"`
}

// Seconds returns the elapsed time in seconds.
func (e Elapsed) Seconds() float64 {
	return e.Duration.Seconds()
}
