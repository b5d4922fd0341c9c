// Package planner builds a learning plan from a user's reading, journal,
// study and quiz history.
package planner

import (
	"fmt"
	"sort"
	"time"

	"bible-study/internal/analytics"
	"bible-study/internal/domain"
)

const (
	listLimit             = 3
	reviewTopicLimit      = 5
	recentReadingLimit    = 5
	defaultSessionMinutes = 15.0
	week                  = 7 * 24 * time.Hour
)

var (
	defaultStrengths = []string{"Psalms", "Proverbs", "John"}
	defaultTimeOfDay = domain.TimeOfDayEvening
	scheduleDays     = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	scheduleRotation = []domain.ActivityKind{domain.ActivityReading, domain.ActivityReview, domain.ActivityQuiz}
)

var defaultFocusByKind = map[domain.ActivityKind]string{
	domain.ActivityReading: "Psalms",
	domain.ActivityReview:  "Recent reading",
	domain.ActivityQuiz:    "Mixed review",
}

// Input is everything a plan is computed from. Metrics should be the
// analytics over Results; Now anchors the trailing-week window.
type Input struct {
	Now      time.Time
	Reading  []domain.ReadingProgress
	Journal  []domain.JournalEntry
	Sessions []domain.StudySession
	Results  []domain.QuizResult
	Metrics  domain.PerformanceMetrics
}

// Recommend computes a plan. Empty history degrades to fixed defaults.
func Recommend(in Input) domain.LearningPlanData {
	counts, order := completedChapters(in.Reading)
	quizWeak := analytics.WeakBooks(in.Metrics, listLimit)

	plan := domain.LearningPlanData{
		Strengths:   strengths(counts, order),
		Weaknesses:  weaknesses(counts),
		QuizSummary: quizSummary(in.Results),
		StudyHabits: studyHabits(in.Sessions, in.Now),
		GeneratedAt: in.Now,
	}
	plan.RecommendedBooks = recommendedBooks(quizWeak, plan.Weaknesses, counts, in.Metrics, in.Journal)
	plan.ReviewTopics = reviewTopics(in.Results, in.Reading)
	plan.WeeklySchedule = weeklySchedule(plan.RecommendedBooks, plan.ReviewTopics, quizWeak, plan.Weaknesses)
	return plan
}

// completedChapters counts completed chapters per canonical book, keeping
// the order in which books first appear in the history.
func completedChapters(reading []domain.ReadingProgress) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, p := range reading {
		book, ok := domain.CanonicalBookName(p.Book)
		if !ok {
			continue
		}
		if _, seen := counts[book]; !seen {
			counts[book] = 0
			order = append(order, book)
		}
		if p.Completed {
			counts[book]++
		}
	}
	return counts, order
}

func strengths(counts map[string]int, order []string) []string {
	ranked := make([]string, 0, len(order))
	for _, b := range order {
		if counts[b] > 0 {
			ranked = append(ranked, b)
		}
	}
	if len(ranked) == 0 {
		return append([]string(nil), defaultStrengths...)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return counts[ranked[i]] > counts[ranked[j]] })
	if len(ranked) > listLimit {
		ranked = ranked[:listLimit]
	}
	return ranked
}

func weaknesses(counts map[string]int) []string {
	out := make([]string, 0, listLimit)
	for _, b := range domain.CanonicalBooks() {
		if len(out) == listLimit {
			break
		}
		if counts[b] <= 1 {
			out = append(out, b)
		}
	}
	return out
}

func recommendedBooks(quizWeak, readingGaps []string, counts map[string]int, metrics domain.PerformanceMetrics, journal []domain.JournalEntry) []domain.BookRecommendation {
	recs := make([]domain.BookRecommendation, 0, listLimit)
	seen := make(map[string]bool)
	add := func(book string, reason domain.RecommendationReason, detail string) {
		if len(recs) == listLimit || seen[book] {
			return
		}
		seen[book] = true
		recs = append(recs, domain.BookRecommendation{Book: book, Reason: reason, Detail: detail})
	}

	for _, b := range quizWeak {
		add(b, domain.ReasonQuizPerformance, fmt.Sprintf("%.0f%% correct in recent quizzes", bookPercentage(metrics, b)))
	}
	for _, b := range readingGaps {
		add(b, domain.ReasonReadingGap, fmt.Sprintf("%d chapter(s) completed", counts[b]))
	}
	if latest := latestJournal(journal); latest != nil {
		add(latest.Book, domain.ReasonJournal, fmt.Sprintf("you recently journaled on %s %d", latest.Book, latest.Chapter))
	}
	return recs
}

func bookPercentage(m domain.PerformanceMetrics, book string) float64 {
	for _, s := range m.Books.Stats {
		if s.Name == book {
			return s.Percentage
		}
	}
	return 0
}

func latestJournal(journal []domain.JournalEntry) *domain.JournalEntry {
	var latest *domain.JournalEntry
	for i := range journal {
		e := &journal[i]
		if latest == nil || journalTime(e).After(journalTime(latest)) {
			latest = e
		}
	}
	return latest
}

func journalTime(e *domain.JournalEntry) time.Time {
	if e.UpdatedAt.IsZero() {
		return e.CreatedAt
	}
	return e.UpdatedAt
}
