// Package weather implements the deterministic first-year weather oracle
// (spec section 4.D) and its supporting data model (spec section 3):
// Season, WeatherCondition, and the 84-day WeatherCalendar it produces.
package weather

import (
	"seedsearch/pkg/seedsearch/hash"
	"seedsearch/pkg/seedsearch/rng"
)

// Season is a tagged enumeration of the three simulated seasons.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
)

// String returns the capitalized English name, the wire serialization
// used at the system boundary (spec section 6).
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	default:
		return "Unknown"
	}
}

// ParseSeason parses a capitalized English season name.
func ParseSeason(s string) (Season, bool) {
	switch s {
	case "Spring":
		return Spring, true
	case "Summer":
		return Summer, true
	case "Fall":
		return Fall, true
	default:
		return 0, false
	}
}

const daysPerSeason = 28
const totalDays = 84

// WeatherCondition is an immutable rainfall predicate over one season's
// day window (spec section 3).
type WeatherCondition struct {
	Season      Season
	StartDay    int // 1..28
	EndDay      int // StartDay..28
	MinRainDays int // 0..(EndDay-StartDay+1)
}

// AbsoluteStart returns the absolute day (1..84) this condition's window
// starts on.
func (c WeatherCondition) AbsoluteStart() int {
	return int(c.Season)*daysPerSeason + c.StartDay
}

// AbsoluteEnd returns the absolute day (1..84) this condition's window
// ends on.
func (c WeatherCondition) AbsoluteEnd() int {
	return int(c.Season)*daysPerSeason + c.EndDay
}

// Calendar maps absolute day 1..84 to whether it rains. Index 0 is
// unused; entries 1..84 are always populated by Predict.
type Calendar [totalDays + 1]bool

// greenRainDays are the candidate days for summer's single green-rain
// event, in the fixed order the reference indexes into with next_int.
var greenRainDays = [8]int{5, 6, 7, 14, 15, 16, 18, 23}

// locationWeatherHash and summerRainChanceHash are the two string hashes
// the oracle mixes into its generic spring/fall rule and its summer rule
// respectively; they are loop-invariant per
// search and computed exactly once at package init, not behind a lazy
// mutable singleton.
var (
	locationWeatherHash = hash.String("location_weather")
	summerRainChanceHash = hash.String("summer_rain_chance")
)

// Predict maps (gameSeed, legacy) to the 84-day rain calendar for year 1
// (spring + summer + fall). It is a pure function: identical inputs
// always produce an identical calendar.
func Predict(gameSeed int32, legacy bool) Calendar {
	var cal Calendar

	greenDay := greenRainDay(gameSeed, legacy)

	for absoluteDay := 1; absoluteDay <= totalDays; absoluteDay++ {
		season := Season((absoluteDay - 1) / daysPerSeason)
		dayOfMonth := ((absoluteDay - 1) % daysPerSeason) + 1

		cal[absoluteDay] = predictDay(gameSeed, legacy, season, dayOfMonth, absoluteDay, greenDay)
	}

	return cal
}

func greenRainDay(gameSeed int32, legacy bool) int {
	const year = 1 // vestigial year index kept for reference compatibility
	gSeed := rng.Mix(year*777, gameSeed, 0, 0, 0, legacy)
	idx := rng.NextInt(gSeed, 8)
	return greenRainDays[idx]
}

func predictDay(gameSeed int32, legacy bool, season Season, dayOfMonth, absoluteDay, greenDay int) bool {
	switch season {
	case Spring:
		switch dayOfMonth {
		case 1, 2, 4:
			return false
		case 3:
			return true
		case 13, 24:
			return false
		default:
			return genericRainy(gameSeed, legacy, absoluteDay)
		}

	case Summer:
		switch {
		case dayOfMonth == greenDay:
			return true
		case dayOfMonth == 11 || dayOfMonth == 28:
			return false
		case dayOfMonth%13 == 0:
			return true
		default:
			half := int32(gameSeed / 2) // truncates toward zero, same as Go's integer division
			r := rng.Mix(int32(absoluteDay-1), half, summerRainChanceHash, 0, 0, legacy)
			p := 0.12 + 0.003*float64(dayOfMonth-1)
			return rng.NextDouble(r) < p
		}

	case Fall:
		switch dayOfMonth {
		case 16, 27:
			return false
		default:
			return genericRainy(gameSeed, legacy, absoluteDay)
		}
	}

	return false
}

func genericRainy(gameSeed int32, legacy bool, absoluteDay int) bool {
	r := rng.Mix(locationWeatherHash, gameSeed, int32(absoluteDay-1), 0, 0, legacy)
	return rng.NextDouble(r) < 0.183
}
