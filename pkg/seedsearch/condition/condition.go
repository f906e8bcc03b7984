// Package condition implements the rainfall-condition evaluator (spec
// section 4.E): counting rainy days in a window and ANDing the result
// against every condition in a request.
package condition

import "seedsearch/pkg/seedsearch/weather"

// Matches reports whether calendar satisfies every condition. An empty
// conditions slice is the identity predicate and always matches.
// Evaluation short-circuits on the first failing condition.
func Matches(cal weather.Calendar, conditions []weather.WeatherCondition) bool {
	for _, c := range conditions {
		if countRainyDays(cal, c.AbsoluteStart(), c.AbsoluteEnd()) < c.MinRainDays {
			return false
		}
	}
	return true
}

func countRainyDays(cal weather.Calendar, start, end int) int {
	count := 0
	for day := start; day <= end; day++ {
		if cal[day] {
			count++
		}
	}
	return count
}
