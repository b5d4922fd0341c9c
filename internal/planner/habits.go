package planner

import (
	"fmt"
	"sort"
	"time"

	"bible-study/internal/domain"
)

func studyHabits(sessions []domain.StudySession, now time.Time) domain.StudyHabits {
	habits := domain.StudyHabits{
		TotalSessions:         len(sessions),
		AverageSessionMinutes: defaultSessionMinutes,
		BestTimeOfDay:         defaultTimeOfDay,
	}
	if len(sessions) == 0 {
		return habits
	}

	var minutes int
	windowStart := now.Add(-week)
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[domain.TimeOfDay]*bucket)
	var bucketOrder []domain.TimeOfDay

	for _, s := range sessions {
		minutes += s.DurationMinutes
		if s.StartedAt.After(windowStart) && !s.StartedAt.After(now) {
			habits.WeeklyFrequency++
		}
		if s.StartedAt.IsZero() || s.Score == nil {
			continue
		}
		tod := domain.BucketForHour(s.StartedAt.Hour())
		b, ok := buckets[tod]
		if !ok {
			b = &bucket{}
			buckets[tod] = b
			bucketOrder = append(bucketOrder, tod)
		}
		b.sum += *s.Score
		b.count++
	}
	habits.AverageSessionMinutes = float64(minutes) / float64(len(sessions))

	best := -1.0
	for _, tod := range bucketOrder {
		b := buckets[tod]
		if mean := b.sum / float64(b.count); mean > best {
			best = mean
			habits.BestTimeOfDay = tod
		}
	}
	return habits
}

func quizSummary(results []domain.QuizResult) domain.QuizSummary {
	summary := domain.QuizSummary{TotalQuizzes: len(results)}
	if len(results) == 0 {
		summary.AverageScore = 75
		return summary
	}

	var sum float64
	latest := &results[0]
	for i := range results {
		r := &results[i]
		p := r.Percentage()
		sum += p
		if p > summary.BestScore {
			summary.BestScore = p
		}
		if r.CompletedAt.After(latest.CompletedAt) {
			latest = r
		}
	}
	summary.AverageScore = sum / float64(len(results))
	summary.LatestScore = latest.Percentage()
	return summary
}

// reviewTopics lists topics of incorrectly answered questions first, then
// the most recently read chapters.
func reviewTopics(results []domain.QuizResult, reading []domain.ReadingProgress) []string {
	topics := make([]string, 0, reviewTopicLimit)
	seen := make(map[string]bool)
	add := func(t string) {
		if t == "" || seen[t] || len(topics) == reviewTopicLimit {
			return
		}
		seen[t] = true
		topics = append(topics, t)
	}

	for _, r := range results {
		for _, o := range r.Outcomes {
			if !o.IsCorrect {
				add(o.Topic)
			}
		}
	}

	recent := append([]domain.ReadingProgress(nil), reading...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].LastReadAt.After(recent[j].LastReadAt) })
	if len(recent) > recentReadingLimit {
		recent = recent[:recentReadingLimit]
	}
	for _, p := range recent {
		add(fmt.Sprintf("%s %d", p.Book, p.Chapter))
	}
	return topics
}

// weeklySchedule rotates reading, review and quiz days from Monday to Sunday.
func weeklySchedule(recs []domain.BookRecommendation, reviews, quizWeak, gaps []string) []domain.ScheduleEntry {
	reading := make([]string, 0, len(recs))
	for _, r := range recs {
		reading = append(reading, r.Book)
	}
	quiz := quizWeak
	if len(quiz) == 0 {
		quiz = gaps
	}
	focus := map[domain.ActivityKind][]string{
		domain.ActivityReading: reading,
		domain.ActivityReview:  reviews,
		domain.ActivityQuiz:    quiz,
	}

	used := make(map[domain.ActivityKind]int)
	schedule := make([]domain.ScheduleEntry, 0, len(scheduleDays))
	for i, day := range scheduleDays {
		kind := scheduleRotation[i%len(scheduleRotation)]
		entry := domain.ScheduleEntry{Day: day, Activity: kind, Focus: defaultFocusByKind[kind]}
		if options := focus[kind]; len(options) > 0 {
			entry.Focus = options[used[kind]%len(options)]
		}
		used[kind]++
		schedule = append(schedule, entry)
	}
	return schedule
}
