package dataprocessing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/phamthanhtung35NB/excel-to-chart/internal/errors"
	"github.com/phamthanhtung35NB/excel-to-chart/pkg/contracts/domain"
)

// Progress buckets in display order
const (
	BucketZero     = "0%"
	BucketQuarter  = "1-25%"
	BucketHalf     = "26-50%"
	BucketThree    = "51-75%"
	BucketNearly   = "76-99%"
	BucketComplete = "100%"
)

// ProgressBuckets is the canonical bucket order
var ProgressBuckets = []string{BucketZero, BucketQuarter, BucketHalf, BucketThree, BucketNearly, BucketComplete}

var (
	scoreFractionPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*/\s*(\d+(?:[.,]\d+)?)\s*$`)
	durationUnitPattern  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(giờ|phút|giây)`)
)

// parseDecimal accepts both '.' and ',' as the decimal separator
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// ParsePercent parses "45%" or "45". Anything unparseable or outside [0,100]
// is missing.
func ParsePercent(text string) domain.Percent {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return domain.Percent{}
	}
	v, err := parseDecimal(s)
	if err != nil || v < 0 || v > 100 {
		return domain.Percent{}
	}
	return domain.NewPercent(v)
}

// ParseScoreFraction parses "<score>/<total>". Malformed text leaves both
// halves missing.
func ParseScoreFraction(text string) domain.Fraction {
	m := scoreFractionPattern.FindStringSubmatch(text)
	if m == nil {
		return domain.Fraction{}
	}
	score, err := parseDecimal(m[1])
	if err != nil {
		return domain.Fraction{}
	}
	total, err := parseDecimal(m[2])
	if err != nil {
		return domain.Fraction{}
	}
	return domain.Fraction{Score: score, Total: total, Valid: true}
}

// ParsePassed reports whether the result text contains the pass token.
// The match is case-sensitive, so "Không đạt" does not contain "Đạt".
func ParsePassed(text, token string) bool {
	if token == "" {
		return false
	}
	return strings.Contains(text, token)
}

// ParseTimestamp parses text with the first matching layout. Blank text is
// missing (nil); anything else that no layout accepts is a PARSE_FAILURE.
func ParseTimestamp(text string, layouts ...string) (*time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}

	var lastErr error
	for _, layout := range layouts {
		ts, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return &ts, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no layout configured")
	}
	return nil, apperrors.NewParsingError(fmt.Sprintf("invalid timestamp %q", s), lastErr)
}

// ParseDateCell converts a cell stored as an Excel date. text is the value
// as displayed and raw the stored serial. Plain numbers display as their
// stored value and are not dates.
func ParseDateCell(text, raw string) (*time.Time, bool) {
	text, raw = strings.TrimSpace(text), strings.TrimSpace(raw)
	if raw == "" || raw == text || !strings.ContainsAny(text, "/-:") {
		return nil, false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return nil, false
	}
	ts, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil, false
	}
	ts = ts.Round(time.Second)
	local := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), 0, time.Local)
	return &local, true
}

// ParseDuration parses time-on-task as HH:MM:SS, MM:SS, a bare number of
// seconds, or Vietnamese units such as "1 giờ 5 phút 30 giây".
func ParseDuration(text string) domain.Elapsed {
	s := strings.TrimSpace(strings.ToLower(text))
	if s == "" {
		return domain.Elapsed{}
	}

	if strings.Contains(s, ":") {
		return parseClockDuration(s)
	}

	if v, err := parseDecimal(s); err == nil {
		if v < 0 {
			return domain.Elapsed{}
		}
		return domain.Elapsed{Duration: time.Duration(v * float64(time.Second)), Valid: true}
	}

	matches := durationUnitPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return domain.Elapsed{}
	}
	var total float64
	for _, m := range matches {
		v, err := parseDecimal(m[1])
		if err != nil {
			return domain.Elapsed{}
		}
		switch m[2] {
		case "giờ":
			total += v * 3600
		case "phút":
			total += v * 60
		case "giây":
			total += v
		}
	}
	return domain.Elapsed{Duration: time.Duration(total * float64(time.Second)), Valid: true}
}

func parseClockDuration(s string) domain.Elapsed {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.Elapsed{}
	}

	var seconds float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return domain.Elapsed{}
		}
		seconds = seconds*60 + v
	}
	return domain.Elapsed{Duration: time.Duration(seconds * float64(time.Second)), Valid: true}
}

// ProgressBucketOf maps a progress value to its bucket. The six buckets
// partition [0,100]; NaN and values outside it return false.
func ProgressBucketOf(p float64) (string, bool) {
	switch {
	case math.IsNaN(p) || p < 0 || p > 100:
		return "", false
	case p == 0:
		return BucketZero, true
	case p <= 25:
		return BucketQuarter, true
	case p <= 50:
		return BucketHalf, true
	case p <= 75:
		return BucketThree, true
	case p < 100:
		return BucketNearly, true
	default:
		return BucketComplete, true
	}
}
