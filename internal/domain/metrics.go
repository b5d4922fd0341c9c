package domain

// DimensionStat is the correctness of one category, topic or book.
type DimensionStat struct {
	Name       string  `json:"name"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DimensionMetrics groups the stats of one dimension. Stats keep first-seen
// order; Strengths are best first, Weaknesses worst first.
type DimensionMetrics struct {
	Stats      []DimensionStat `json:"stats"`
	Strengths  []DimensionStat `json:"strengths"`
	Weaknesses []DimensionStat `json:"weaknesses"`
}

// TopicImprovement describes a topic whose correctness rose between its first
// and latest observation.
type TopicImprovement struct {
	Topic           string  `json:"topic"`
	FirstPercentage float64 `json:"first_percentage"`
	LastPercentage  float64 `json:"last_percentage"`
	Delta           float64 `json:"delta"`
}

// PerformanceMetrics is derived from the full quiz history and never stored
// as primary state.
type PerformanceMetrics struct {
	TotalQuizzes     int                `json:"total_quizzes"`
	AverageScore     float64            `json:"average_score"`
	Strengths        []string           `json:"strengths"`
	Weaknesses       []string           `json:"weaknesses"`
	Categories       DimensionMetrics   `json:"categories"`
	Topics           DimensionMetrics   `json:"topics"`
	Books            DimensionMetrics   `json:"books"`
	RecentlyImproved []TopicImprovement `json:"recently_improved"`
	IsFallback       bool               `json:"is_fallback"`
}
