// Package advisor produces canned coaching texts. It stands in for a language
// model behind ports.ContentGenerator.
package advisor

import (
	"math/rand/v2"
	"strings"

	"github.com/healthhub/fitness-api/internal/core/domain"
)

var templates = map[string][]string{
	domain.RecommendationWorkout: {
		"Based on your recent activity, try incorporating more strength training into your routine. Aim for 3 sessions per week.",
		"Your cardio performance is improving! Consider adding interval training to further boost your endurance.",
		"You've been consistent with your workouts. Try adding yoga or stretching to improve flexibility and recovery.",
		"Your activity level has decreased recently. Start with short, daily walks to get back on track.",
		"Great progress on your strength goals! Consider adding more compound exercises like squats and deadlifts.",
	},
	domain.RecommendationNutrition: {
		"Try increasing your protein intake to support muscle recovery after your workouts.",
		"Consider adding more leafy greens to your diet for improved recovery and energy levels.",
		"Based on your activity level, you might benefit from increasing your healthy carbohydrate intake before workouts.",
		"Your water intake is below target. Aim to drink at least 8 glasses of water daily for optimal performance.",
		"Consider timing your meals around your workouts for improved energy and recovery.",
	},
	domain.RecommendationSleep: {
		"Your sleep patterns show inconsistency. Try establishing a regular sleep schedule, even on weekends.",
		"Consider reducing screen time 1 hour before bed to improve sleep quality.",
		"Your sleep duration is below recommended levels. Aim for 7-8 hours of sleep for optimal recovery.",
		"Try incorporating a relaxation routine before bed to improve sleep quality.",
		"Your sleep quality appears to be improving! Keep maintaining your consistent sleep schedule.",
	},
}

type insightRule struct {
	keywords []string
	advice   string
}

// Rules are checked in order; the first keyword hit wins.
var insightRules = []insightRule{
	{
		keywords: []string{"weight loss"},
		advice:   "For effective weight loss, focus on creating a calorie deficit through a combination of diet and exercise. Aim for 150-300 minutes of moderate-intensity cardio per week, combined with strength training 2-3 times weekly.",
	},
	{
		keywords: []string{"muscle", "strength"},
		advice:   "To build muscle effectively, ensure you're consuming adequate protein (1.6-2.2g per kg of bodyweight) and following a progressive overload approach in your strength training.",
	},
	{
		keywords: []string{"sleep"},
		advice:   "Improving sleep quality can significantly impact your fitness results. Aim for 7-9 hours of quality sleep, maintain a consistent sleep schedule, and create a relaxing bedtime routine.",
	},
	{
		keywords: []string{"nutrition", "diet"},
		advice:   "Focus on whole foods with a balance of proteins, complex carbohydrates, and healthy fats. Stay hydrated and time your meals around your workouts for optimal performance and recovery.",
	},
}

const defaultInsight = "Based on general fitness principles, consistency is key to achieving your goals. Aim for a balanced approach that includes both cardio and strength training, proper nutrition, adequate recovery, and stress management."

// Templates picks recommendation texts at random from a fixed pool.
type Templates struct {
	intn func(n int) int
}

func New() *Templates {
	return &Templates{intn: rand.IntN}
}

// Recommendation returns a template for recType. Unknown types fall back to
// the workout pool.
func (t *Templates) Recommendation(recType string) string {
	pool, ok := templates[recType]
	if !ok {
		pool = templates[domain.RecommendationWorkout]
	}
	return pool[t.intn(len(pool))]
}

func (t *Templates) Insight(prompt string) string {
	p := strings.ToLower(prompt)
	for _, rule := range insightRules {
		for _, kw := range rule.keywords {
			if strings.Contains(p, kw) {
				return rule.advice
			}
		}
	}
	return defaultInsight
}
