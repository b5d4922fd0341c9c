package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bible-study/internal/analytics"
	"bible-study/internal/domain"
)

var now = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func chapters(book string, n int, completed bool) []domain.ReadingProgress {
	out := make([]domain.ReadingProgress, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.ReadingProgress{
			UserID:     "u1",
			Book:       book,
			Chapter:    i,
			Completed:  completed,
			LastReadAt: now.Add(-time.Duration(100-i) * time.Hour),
		})
	}
	return out
}

func score(v float64) *float64 { return &v }

func TestRecommend_EmptyHistoryUsesDefaults(t *testing.T) {
	plan := Recommend(Input{Now: now, Metrics: analytics.FallbackMetrics()})

	assert.Equal(t, []string{"Psalms", "Proverbs", "John"}, plan.Strengths)
	assert.Equal(t, []string{"Genesis", "Exodus", "Leviticus"}, plan.Weaknesses)
	assert.Equal(t, 75.0, plan.QuizSummary.AverageScore)
	assert.Equal(t, 0, plan.QuizSummary.TotalQuizzes)
	assert.Equal(t, 15.0, plan.StudyHabits.AverageSessionMinutes)
	assert.Equal(t, domain.TimeOfDayEvening, plan.StudyHabits.BestTimeOfDay)
	assert.Empty(t, plan.ReviewTopics)
	assert.Equal(t, now, plan.GeneratedAt)

	require.Len(t, plan.RecommendedBooks, 3)
	for _, r := range plan.RecommendedBooks {
		assert.Equal(t, domain.ReasonReadingGap, r.Reason)
	}
	require.Len(t, plan.WeeklySchedule, 7)
	assert.Equal(t, "Monday", plan.WeeklySchedule[0].Day)
	assert.Equal(t, "Sunday", plan.WeeklySchedule[6].Day)
}

func TestRecommend_GenesisOnly(t *testing.T) {
	plan := Recommend(Input{
		Now:     now,
		Reading: chapters("Genesis", 5, true),
		Metrics: analytics.FallbackMetrics(),
	})

	require.NotEmpty(t, plan.Strengths)
	assert.Equal(t, "Genesis", plan.Strengths[0])
	assert.Equal(t, []string{"Genesis"}, plan.Strengths)
	assert.Equal(t, []string{"Exodus", "Leviticus", "Numbers"}, plan.Weaknesses)
}

func TestRecommend_StrengthsRankByCompletedChapters(t *testing.T) {
	var reading []domain.ReadingProgress
	reading = append(reading, chapters("Mark", 2, true)...)
	reading = append(reading, chapters("Ruth", 4, true)...)
	reading = append(reading, chapters("Jonah", 2, true)...)
	reading = append(reading, chapters("Acts", 6, false)...)
	reading = append(reading, chapters("Romans", 3, true)...)
	reading = append(reading, chapters("Genesis", 1, true)...)

	plan := Recommend(Input{Now: now, Reading: reading, Metrics: analytics.FallbackMetrics()})

	assert.Equal(t, []string{"Ruth", "Romans", "Mark"}, plan.Strengths)
	// Genesis has one chapter, Exodus none; Ruth and Mark are covered.
	assert.Equal(t, []string{"Genesis", "Exodus", "Leviticus"}, plan.Weaknesses)
}

func TestRecommend_RecommendedBooksUnion(t *testing.T) {
	results := []domain.QuizResult{{
		UserID:        "u1",
		Score:         0,
		TotalPossible: 20,
		CompletedAt:   now.Add(-time.Hour),
		Outcomes: []domain.QuestionOutcome{
			{Book: "Exodus", Topic: "Plagues", PointsPossible: 10},
			{Book: "Nahum", Topic: "Nineveh", PointsPossible: 10},
		},
	}}

	plan := Recommend(Input{
		Now:     now,
		Results: results,
		Metrics: analytics.Aggregate(results),
		Journal: []domain.JournalEntry{
			{Book: "Romans", Chapter: 8, UpdatedAt: now.Add(-time.Hour)},
			{Book: "Philippians", Chapter: 4, UpdatedAt: now.Add(-2 * time.Hour)},
		},
	})

	require.Len(t, plan.RecommendedBooks, 3)
	assert.Equal(t, domain.BookRecommendation{Book: "Exodus", Reason: domain.ReasonQuizPerformance, Detail: "0% correct in recent quizzes"}, plan.RecommendedBooks[0])
	assert.Equal(t, "Nahum", plan.RecommendedBooks[1].Book)
	// Exodus is also a reading gap but was already recommended.
	assert.Equal(t, domain.BookRecommendation{Book: "Genesis", Reason: domain.ReasonReadingGap, Detail: "0 chapter(s) completed"}, plan.RecommendedBooks[2])
}

func TestRecommend_JournalBookWhenRoomLeft(t *testing.T) {
	// Every book but Genesis has two completed chapters, leaving one gap.
	var reading []domain.ReadingProgress
	for _, b := range domain.CanonicalBooks()[1:] {
		reading = append(reading, chapters(b, 2, true)...)
	}

	plan := Recommend(Input{
		Now:     now,
		Reading: reading,
		Metrics: analytics.FallbackMetrics(),
		Journal: []domain.JournalEntry{
			{Book: "Psalms", Chapter: 23, CreatedAt: now.Add(-48 * time.Hour)},
			{Book: "Isaiah", Chapter: 53, CreatedAt: now.Add(-24 * time.Hour)},
		},
	})

	assert.Equal(t, []string{"Genesis"}, plan.Weaknesses)
	require.Len(t, plan.RecommendedBooks, 2)
	assert.Equal(t, "Genesis", plan.RecommendedBooks[0].Book)
	assert.Equal(t, domain.BookRecommendation{Book: "Isaiah", Reason: domain.ReasonJournal, Detail: "you recently journaled on Isaiah 53"}, plan.RecommendedBooks[1])
}

func TestRecommend_StudyHabits(t *testing.T) {
	sessions := []domain.StudySession{
		{DurationMinutes: 10, StartedAt: time.Date(2026, 4, 9, 7, 0, 0, 0, time.UTC), Score: score(60)},
		{DurationMinutes: 20, StartedAt: time.Date(2026, 4, 8, 13, 0, 0, 0, time.UTC), Score: score(90)},
		{DurationMinutes: 30, StartedAt: time.Date(2026, 4, 7, 14, 0, 0, 0, time.UTC), Score: score(80)},
		{DurationMinutes: 40, StartedAt: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC), Score: score(84)},
		{DurationMinutes: 50, StartedAt: now.Add(-7 * 24 * time.Hour)},
		{DurationMinutes: 30, StartedAt: now.Add(time.Hour)},
	}

	habits := Recommend(Input{Now: now, Sessions: sessions, Metrics: analytics.FallbackMetrics()}).StudyHabits
	assert.Equal(t, 6, habits.TotalSessions)
	assert.Equal(t, 30.0, habits.AverageSessionMinutes)
	// The session exactly 7 days old and the one in the future are outside the window.
	assert.Equal(t, 3, habits.WeeklyFrequency)
	// Afternoon averages 85, night 84, morning 60.
	assert.Equal(t, domain.TimeOfDayAfternoon, habits.BestTimeOfDay)
}

func TestRecommend_BestTimeUsesTheSessionsLocalClock(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	sessions := []domain.StudySession{
		// 08:00 in New York is 13:00 UTC
		{DurationMinutes: 30, StartedAt: time.Date(2026, 4, 8, 8, 0, 0, 0, est), Score: score(90)},
		{DurationMinutes: 30, StartedAt: time.Date(2026, 4, 8, 18, 0, 0, 0, est), Score: score(70)},
	}

	habits := Recommend(Input{Now: now, Sessions: sessions, Metrics: analytics.FallbackMetrics()}).StudyHabits
	assert.Equal(t, domain.TimeOfDayMorning, habits.BestTimeOfDay)
}

func TestRecommend_BestTimeDefaultsWithoutScores(t *testing.T) {
	sessions := []domain.StudySession{{DurationMinutes: 12, StartedAt: now.Add(-time.Hour)}}
	habits := Recommend(Input{Now: now, Sessions: sessions, Metrics: analytics.FallbackMetrics()}).StudyHabits
	assert.Equal(t, domain.TimeOfDayEvening, habits.BestTimeOfDay)
	assert.Equal(t, 12.0, habits.AverageSessionMinutes)
	assert.Equal(t, 1, habits.WeeklyFrequency)
}

func TestRecommend_ReviewTopics(t *testing.T) {
	results := []domain.QuizResult{{
		TotalPossible: 40,
		Score:         10,
		Outcomes: []domain.QuestionOutcome{
			{Topic: "Covenant", IsCorrect: false},
			{Topic: "Exile", IsCorrect: true},
			{Topic: "Covenant", IsCorrect: false},
			{Topic: "Prophecy", IsCorrect: false},
			{Topic: "", IsCorrect: false},
		},
	}}
	var reading []domain.ReadingProgress
	for i := 1; i <= 7; i++ {
		reading = append(reading, domain.ReadingProgress{
			Book:       "Luke",
			Chapter:    i,
			Completed:  true,
			LastReadAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	plan := Recommend(Input{Now: now, Results: results, Reading: reading, Metrics: analytics.Aggregate(results)})
	assert.Equal(t, []string{"Covenant", "Prophecy", "Luke 1", "Luke 2", "Luke 3"}, plan.ReviewTopics)
}

func TestRecommend_QuizSummary(t *testing.T) {
	results := []domain.QuizResult{
		{Score: 5, TotalPossible: 10, CompletedAt: now.Add(-3 * time.Hour)},
		{Score: 9, TotalPossible: 10, CompletedAt: now.Add(-2 * time.Hour)},
		{Score: 7, TotalPossible: 10, CompletedAt: now.Add(-time.Hour)},
	}
	summary := Recommend(Input{Now: now, Results: results, Metrics: analytics.Aggregate(results)}).QuizSummary
	assert.Equal(t, 3, summary.TotalQuizzes)
	assert.InDelta(t, 70.0, summary.AverageScore, 1e-9)
	assert.InDelta(t, 90.0, summary.BestScore, 1e-9)
	assert.InDelta(t, 70.0, summary.LatestScore, 1e-9)
}

func TestRecommend_WeeklyScheduleRotation(t *testing.T) {
	plan := Recommend(Input{
		Now:     now,
		Reading: chapters("Genesis", 5, true),
		Metrics: analytics.FallbackMetrics(),
	})

	var got []string
	for _, e := range plan.WeeklySchedule {
		got = append(got, fmt.Sprintf("%s:%s:%s", e.Day, e.Activity, e.Focus))
	}
	assert.Equal(t, []string{
		"Monday:reading:Exodus",
		"Tuesday:review:Genesis 5",
		"Wednesday:quiz:Exodus",
		"Thursday:reading:Leviticus",
		"Friday:review:Genesis 4",
		"Saturday:quiz:Leviticus",
		"Sunday:reading:Numbers",
	}, got)
}
