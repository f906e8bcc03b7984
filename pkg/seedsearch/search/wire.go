package search

import (
	"encoding/json"
	"fmt"

	"seedsearch/pkg/seedsearch/weather"
)

// wireCondition and wireRequest mirror the JSON search request shape at
// the system boundary (spec section 6).
type wireCondition struct {
	Season      string `json:"season"`
	StartDay    int    `json:"startDay"`
	EndDay      int    `json:"endDay"`
	MinRainDays int    `json:"minRainDays"`
}

type wireRequest struct {
	StartSeed         int32           `json:"startSeed"`
	EndSeed           int32           `json:"endSeed"`
	UseLegacyRandom   bool            `json:"useLegacyRandom"`
	WeatherConditions []wireCondition `json:"weatherConditions"`
	OutputLimit       int             `json:"outputLimit"`
}

// ParseRequest decodes the section-6 JSON search request shape into a
// SearchRequest. It does not call Validate; callers should do that
// explicitly (Search itself validates again, so this is mainly useful
// for transports that want an early 400 before spinning up workers).
func ParseRequest(data []byte) (SearchRequest, error) {
	var wr wireRequest
	if err := json.Unmarshal(data, &wr); err != nil {
		return SearchRequest{}, InvalidRequestError(fmt.Sprintf("malformed JSON: %v", err))
	}

	conditions := make([]weather.WeatherCondition, 0, len(wr.WeatherConditions))
	for i, wc := range wr.WeatherConditions {
		season, ok := weather.ParseSeason(wc.Season)
		if !ok {
			return SearchRequest{}, InvalidRequestError(fmt.Sprintf("condition %d: unknown season %q", i, wc.Season))
		}
		conditions = append(conditions, weather.WeatherCondition{
			Season:      season,
			StartDay:    wc.StartDay,
			EndDay:      wc.EndDay,
			MinRainDays: wc.MinRainDays,
		})
	}

	return SearchRequest{
		StartSeed:       wr.StartSeed,
		EndSeed:         wr.EndSeed,
		UseLegacyRandom: wr.UseLegacyRandom,
		Conditions:      conditions,
		OutputLimit:     wr.OutputLimit,
	}, nil
}

// Event is the tagged union of frames the sink contract emits (spec
// section 6): start, progress, found, complete.
type Event struct {
	Type string `json:"type"`

	Total      int64   `json:"total,omitempty"`
	Checked    int64   `json:"checkedCount,omitempty"`
	Progress   float64 `json:"progress,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Elapsed    float64 `json:"elapsed,omitempty"`
	Seed       int32   `json:"seed,omitempty"`
	TotalFound int     `json:"totalFound,omitempty"`
}

// EventSink adapts a func(Event) into a Sink, the shape every transport
// in this repository uses to turn driver callbacks into wire frames.
type EventSink struct {
	Emit func(Event)
}

func (s EventSink) Start(total int64) {
	s.Emit(Event{Type: "start", Total: total})
}

func (s EventSink) Progress(checked, total int64, percent, speed, elapsed float64) {
	s.Emit(Event{Type: "progress", Checked: checked, Total: total, Progress: percent, Speed: speed, Elapsed: elapsed})
}

func (s EventSink) Found(seed int32) {
	s.Emit(Event{Type: "found", Seed: seed})
}

func (s EventSink) Complete(totalFound int, elapsed float64) {
	s.Emit(Event{Type: "complete", TotalFound: totalFound, Elapsed: elapsed})
}
