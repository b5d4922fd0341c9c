// Package analytics turns quiz history into performance metrics.
package analytics

import (
	"sort"

	"bible-study/internal/domain"
)

const (
	// FallbackAverageScore is reported when there is no history at all.
	FallbackAverageScore = 75.0
	// StrengthThreshold is the percentage at or above which a category is a strength.
	StrengthThreshold = 70.0
	// ImprovementThreshold is the strict percentage-point gain that flags a topic.
	ImprovementThreshold = 10.0
	// summaryLimit caps the top-level strengths and weaknesses lists.
	summaryLimit = 3
)

var (
	fallbackStrengths  = []string{"Gospels", "Psalms & Wisdom"}
	fallbackWeaknesses = []string{"Minor Prophets", "Pauline Epistles"}
)

// FallbackMetrics is returned for an empty history.
func FallbackMetrics() domain.PerformanceMetrics {
	return domain.PerformanceMetrics{
		AverageScore:     FallbackAverageScore,
		Strengths:        append([]string(nil), fallbackStrengths...),
		Weaknesses:       append([]string(nil), fallbackWeaknesses...),
		Categories:       emptyDimension(),
		Topics:           emptyDimension(),
		Books:            emptyDimension(),
		RecentlyImproved: []domain.TopicImprovement{},
		IsFallback:       true,
	}
}

// Aggregate computes metrics over every outcome of every result. Outcomes
// without a tag for a dimension do not count towards that dimension.
func Aggregate(results []domain.QuizResult) domain.PerformanceMetrics {
	if len(results) == 0 {
		return FallbackMetrics()
	}

	categories := newAccumulator()
	topics := newAccumulator()
	books := newAccumulator()
	var percentageSum float64

	for i := range results {
		r := &results[i]
		percentageSum += r.Percentage()
		for _, o := range r.Outcomes {
			categories.add(o.Category, o.IsCorrect)
			topics.add(o.Topic, o.IsCorrect)
			books.add(o.Book, o.IsCorrect)
		}
	}

	m := domain.PerformanceMetrics{
		TotalQuizzes:     len(results),
		AverageScore:     percentageSum / float64(len(results)),
		Categories:       categories.metrics(),
		Topics:           topics.metrics(),
		Books:            books.metrics(),
		RecentlyImproved: improvedTopics(results),
	}
	m.Strengths, m.Weaknesses = summarize(m.Categories)
	return m
}

// WeakBooks returns the first n books of the ascending ranking, worst first.
// A user who scores well everywhere still gets their lowest books.
func WeakBooks(m domain.PerformanceMetrics, n int) []string {
	var out []string
	for _, s := range m.Books.Weaknesses {
		if len(out) == n {
			break
		}
		out = append(out, s.Name)
	}
	return out
}

func summarize(dim domain.DimensionMetrics) (strengths, weaknesses []string) {
	strengths, weaknesses = []string{}, []string{}
	for _, s := range dim.Strengths {
		if len(strengths) == summaryLimit || s.Percentage < StrengthThreshold {
			break
		}
		strengths = append(strengths, s.Name)
	}
	for _, s := range dim.Weaknesses {
		if len(weaknesses) == summaryLimit || s.Percentage >= StrengthThreshold {
			break
		}
		weaknesses = append(weaknesses, s.Name)
	}
	return strengths, weaknesses
}

type tally struct {
	correct int
	total   int
}

// accumulator counts (correct, total) per name, remembering first-seen order.
type accumulator struct {
	order  []string
	counts map[string]*tally
}

func newAccumulator() *accumulator {
	return &accumulator{counts: make(map[string]*tally)}
}

func (a *accumulator) add(name string, correct bool) {
	if name == "" {
		return
	}
	t, ok := a.counts[name]
	if !ok {
		t = &tally{}
		a.counts[name] = t
		a.order = append(a.order, name)
	}
	t.total++
	if correct {
		t.correct++
	}
}

func (a *accumulator) metrics() domain.DimensionMetrics {
	stats := make([]domain.DimensionStat, 0, len(a.order))
	for _, name := range a.order {
		t := a.counts[name]
		if t.total == 0 {
			continue
		}
		stats = append(stats, domain.DimensionStat{
			Name:       name,
			Correct:    t.correct,
			Total:      t.total,
			Percentage: percentage(t.correct, t.total),
		})
	}

	strengths := append([]domain.DimensionStat(nil), stats...)
	sort.SliceStable(strengths, func(i, j int) bool {
		return strengths[i].Percentage > strengths[j].Percentage
	})
	weaknesses := append([]domain.DimensionStat(nil), stats...)
	sort.SliceStable(weaknesses, func(i, j int) bool {
		return weaknesses[i].Percentage < weaknesses[j].Percentage
	})

	return domain.DimensionMetrics{Stats: stats, Strengths: strengths, Weaknesses: weaknesses}
}

func emptyDimension() domain.DimensionMetrics {
	return domain.DimensionMetrics{
		Stats:      []domain.DimensionStat{},
		Strengths:  []domain.DimensionStat{},
		Weaknesses: []domain.DimensionStat{},
	}
}

func percentage(correct, total int) float64 {
	return float64(correct) / float64(total) * 100
}
