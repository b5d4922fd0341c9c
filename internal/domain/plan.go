package domain

import "time"

// TimeOfDay buckets a study session's start hour.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"   // 05:00-11:59
	TimeOfDayAfternoon TimeOfDay = "afternoon" // 12:00-16:59
	TimeOfDayEvening   TimeOfDay = "evening"   // 17:00-20:59
	TimeOfDayNight     TimeOfDay = "night"
)

// BucketForHour maps an hour in [0, 23] to its TimeOfDay.
func BucketForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

// RecommendationReason says why a book was recommended.
type RecommendationReason string

const (
	ReasonQuizPerformance RecommendationReason = "quiz-performance"
	ReasonReadingGap      RecommendationReason = "reading-gap"
	ReasonJournal         RecommendationReason = "journal"
)

type BookRecommendation struct {
	Book   string               `json:"book"`
	Reason RecommendationReason `json:"reason"`
	Detail string               `json:"detail"`
}

type QuizSummary struct {
	TotalQuizzes int     `json:"total_quizzes"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
	LatestScore  float64 `json:"latest_score"`
}

type StudyHabits struct {
	TotalSessions         int       `json:"total_sessions"`
	AverageSessionMinutes float64   `json:"average_session_minutes"`
	WeeklyFrequency       int       `json:"weekly_frequency"`
	BestTimeOfDay         TimeOfDay `json:"best_time_of_day"`
}

// ActivityKind is the kind of a weekly schedule slot.
type ActivityKind string

const (
	ActivityReading ActivityKind = "reading"
	ActivityReview  ActivityKind = "review"
	ActivityQuiz    ActivityKind = "quiz"
)

type ScheduleEntry struct {
	Day      string       `json:"day"`
	Activity ActivityKind `json:"activity"`
	Focus    string       `json:"focus"`
}

// LearningPlanData is a projection over a user's history. It owns nothing
// and is recomputed on demand.
type LearningPlanData struct {
	Strengths        []string             `json:"strengths"`
	Weaknesses       []string             `json:"weaknesses"`
	RecommendedBooks []BookRecommendation `json:"recommended_books"`
	QuizSummary      QuizSummary          `json:"quiz_summary"`
	StudyHabits      StudyHabits          `json:"study_habits"`
	ReviewTopics     []string             `json:"review_topics"`
	WeeklySchedule   []ScheduleEntry      `json:"weekly_schedule"`
	GeneratedAt      time.Time            `json:"generated_at"`
}
