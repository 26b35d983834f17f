package dataprocessing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrEmptyPopulation is returned by Rate when the population is empty
var ErrEmptyPopulation = errors.New("rate of an empty population is undefined")

// Count is one keyed tally
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Counts is an ordered list of tallies
type Counts []Count

// Keys returns the keys in order
func (c Counts) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the counts in order
func (c Counts) Values() []float64 {
	vals := make([]float64, len(c))
	for i, e := range c {
		vals[i] = float64(e.Count)
	}
	return vals
}

// Sum returns the total of all counts
func (c Counts) Sum() int {
	var n int
	for _, e := range c {
		n += e.Count
	}
	return n
}

// Get returns the count for key, zero when absent
func (c Counts) Get(key string) int {
	for _, e := range c {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// GroupStat is the mean and count of one group
type GroupStat struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// DateCount is the number of events on one calendar day
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Round1 rounds to one decimal place
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// DistributionCount tallies keys in the canonical order, zero-filling empty
// categories. Keys outside order are not counted; their number is returned.
func DistributionCount(keys []string, order []string) (Counts, int) {
	pos := make(map[string]int, len(order))
	out := make(Counts, len(order))
	for i, k := range order {
		pos[k] = i
		out[i] = Count{Key: k}
	}

	excluded := 0
	for _, k := range keys {
		i, ok := pos[k]
		if !ok {
			excluded++
			continue
		}
		out[i].Count++
	}
	return out, excluded
}

// ValueCounts tallies non-blank keys, largest first. Ties keep first
// appearance order.
func ValueCounts(keys []string) Counts {
	pos := make(map[string]int)
	var out Counts
	for _, k := range keys {
		if k == "" {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, Count{Key: k})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// MeanByGroup averages values per key. NaN values are missing and neither
// counted nor averaged; blank keys are skipped. Groups with fewer than
// minCount valid values are dropped. Output keeps first appearance order.
func MeanByGroup(keys []string, values []float64, minCount int) ([]GroupStat, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("mean by group: %d keys for %d values", len(keys), len(values))
	}

	type acc struct {
		sum   float64
		count int
	}
	pos := make(map[string]int)
	var order []string
	var accs []acc

	for i, k := range keys {
		if k == "" || math.IsNaN(values[i]) {
			continue
		}
		j, ok := pos[k]
		if !ok {
			j = len(accs)
			pos[k] = j
			order = append(order, k)
			accs = append(accs, acc{})
		}
		accs[j].sum += values[i]
		accs[j].count++
	}

	out := make([]GroupStat, 0, len(accs))
	for j, k := range order {
		if accs[j].count < minCount {
			continue
		}
		out = append(out, GroupStat{
			Key:   k,
			Mean:  accs[j].sum / float64(accs[j].count),
			Count: accs[j].count,
		})
	}
	return out, nil
}

// Mean averages the non-NaN values
func Mean(values []float64) (float64, int) {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), 0
	}
	return sum / float64(n), n
}

// TopN returns the n largest counts. The sort is stable, so equal counts keep
// their input order and repeated calls give the same list.
func TopN(counts Counts, n int) Counts {
	out := make(Counts, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Pivot is a two-way count table
type Pivot struct {
	Rows  []string `json:"rows"`
	Cols  []string `json:"cols"`
	Cells [][]int  `json:"cells"`

	rowPos map[string]int
	colPos map[string]int
}

// NewPivot cross-tabulates paired keys. Row and column order follow first
// appearance; combinations that never occur are zero.
func NewPivot(rowKeys, colKeys []string) (*Pivot, error) {
	if len(rowKeys) != len(colKeys) {
		return nil, fmt.Errorf("pivot: %d row keys for %d column keys", len(rowKeys), len(colKeys))
	}

	p := &Pivot{rowPos: make(map[string]int), colPos: make(map[string]int)}
	for i := range rowKeys {
		r := p.indexOf(rowKeys[i], p.rowPos, &p.Rows)
		c := p.indexOf(colKeys[i], p.colPos, &p.Cols)
		for len(p.Cells) <= r {
			p.Cells = append(p.Cells, nil)
		}
		for len(p.Cells[r]) <= c {
			p.Cells[r] = append(p.Cells[r], 0)
		}
		p.Cells[r][c]++
	}
	for r := range p.Cells {
		for len(p.Cells[r]) < len(p.Cols) {
			p.Cells[r] = append(p.Cells[r], 0)
		}
	}
	return p, nil
}

func (p *Pivot) indexOf(key string, pos map[string]int, keys *[]string) int {
	if i, ok := pos[key]; ok {
		return i
	}
	i := len(*keys)
	pos[key] = i
	*keys = append(*keys, key)
	return i
}

// Get returns the count at (row, col), zero when either key is unknown
func (p *Pivot) Get(row, col string) int {
	r, ok := p.rowPos[row]
	if !ok {
		return 0
	}
	c, ok := p.colPos[col]
	if !ok {
		return 0
	}
	return p.Cells[r][c]
}

// Max returns the largest cell count
func (p *Pivot) Max() int {
	var m int
	for _, row := range p.Cells {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Total sums every cell
func (p *Pivot) Total() int {
	var n int
	for _, row := range p.Cells {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Rate is 100*subset/total rounded to one decimal
func Rate(subset, total int) (float64, error) {
	if total <= 0 {
		return 0, ErrEmptyPopulation
	}
	return Round1(100 * float64(subset) / float64(total)), nil
}

// CountByDate tallies timestamps per calendar day in ascending date order.
// Nil timestamps are skipped.
func CountByDate(times []*time.Time) []DateCount {
	counts := make(map[time.Time]int)
	for _, ts := range times {
		if ts == nil {
			continue
		}
		y, m, d := ts.Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, ts.Location())]++
	}

	out := make([]DateCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DateCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Unique counts distinct non-blank keys
func Unique(keys []string) int {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
