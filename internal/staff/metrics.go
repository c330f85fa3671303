package staff

import (
	"math"
	"strings"
)

// TaskCount is how many times a task was selected across records.
type TaskCount struct {
	Task  Task
	Count int
}

// TaskFrequency counts task selections in Tasks order, zeros included.
func TaskFrequency(records []Record) []TaskCount {
	counts := make(map[Task]int, len(Tasks))
	for _, record := range records {
		for _, task := range record.ProductiveTasks {
			counts[task]++
		}
	}
	out := make([]TaskCount, len(Tasks))
	for i, task := range Tasks {
		out[i] = TaskCount{Task: task, Count: counts[task]}
	}
	return out
}

// Breakdown compares productive task selections against records that
// reported a non-productive task.
type Breakdown struct {
	Productive    int
	NonProductive int
}

// ProductivityBreakdown tallies the productive vs non-productive split.
func ProductivityBreakdown(records []Record) Breakdown {
	var b Breakdown
	for _, record := range records {
		b.Productive += len(record.ProductiveTasks)
		if strings.TrimSpace(record.NonProductiveTask) != "" {
			b.NonProductive++
		}
	}
	return b
}

// Ratio is the productive share of the total, or 0 when nothing was recorded.
func (b Breakdown) Ratio() float64 {
	total := b.Productive + b.NonProductive
	if total == 0 {
		return 0
	}
	return float64(b.Productive) / float64(total)
}

// Bin is one histogram bucket. Lo is inclusive; Hi is exclusive except for
// the last bucket.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// ScoreHistogram buckets productive scores into equal-width bins spanning the
// observed range.
func ScoreHistogram(records []Record, bins int) []Bin {
	if len(records) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, record := range records {
		lo = math.Min(lo, record.ProductiveScore)
		hi = math.Max(hi, record.ProductiveScore)
	}
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(records)}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, record := range records {
		idx := int((record.ProductiveScore - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// Summary holds headline numbers for the charts page.
type Summary struct {
	Count          int
	MeanScore      float64
	MinScore       float64
	MaxScore       float64
	ResearchPapers int
	GrantsLakh     int
	TrainingHours  int
	ByRole         map[Role]int
}

// Summarize totals the collection. An empty collection yields a zero Summary
// with an empty ByRole map.
func Summarize(records []Record) Summary {
	s := Summary{ByRole: make(map[Role]int, len(Roles))}
	if len(records) == 0 {
		return s
	}
	s.Count = len(records)
	s.MinScore = math.Inf(1)
	s.MaxScore = math.Inf(-1)
	var total float64
	for _, record := range records {
		total += record.ProductiveScore
		s.MinScore = math.Min(s.MinScore, record.ProductiveScore)
		s.MaxScore = math.Max(s.MaxScore, record.ProductiveScore)
		s.ResearchPapers += record.ResearchPapers
		s.GrantsLakh += record.GrantsLakh
		s.TrainingHours += record.TrainingHours
		s.ByRole[record.Role]++
	}
	s.MeanScore = total / float64(len(records))
	return s
}
