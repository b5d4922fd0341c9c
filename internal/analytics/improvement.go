package analytics

import (
	"sort"
	"time"

	"bible-study/internal/domain"
)

type observation struct {
	at         time.Time
	percentage float64
}

// improvedTopics compares, per topic, the earliest and the latest result that
// touched it. A topic needs at least two observations to be considered.
func improvedTopics(results []domain.QuizResult) []domain.TopicImprovement {
	var order []string
	series := make(map[string][]observation)

	for i := range results {
		r := &results[i]
		perResult := newAccumulator()
		for _, o := range r.Outcomes {
			perResult.add(o.Topic, o.IsCorrect)
		}
		for _, topic := range perResult.order {
			t := perResult.counts[topic]
			if _, ok := series[topic]; !ok {
				order = append(order, topic)
			}
			series[topic] = append(series[topic], observation{
				at:         r.CompletedAt,
				percentage: percentage(t.correct, t.total),
			})
		}
	}

	improved := []domain.TopicImprovement{}
	for _, topic := range order {
		obs := series[topic]
		if len(obs) < 2 {
			continue
		}
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].at.Before(obs[j].at) })
		first, last := obs[0].percentage, obs[len(obs)-1].percentage
		if delta := last - first; delta > ImprovementThreshold {
			improved = append(improved, domain.TopicImprovement{
				Topic:           topic,
				FirstPercentage: first,
				LastPercentage:  last,
				Delta:           delta,
			})
		}
	}
	return improved
}
