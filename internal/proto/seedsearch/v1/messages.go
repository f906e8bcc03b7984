// Package v1 carries the wire types for seedsearch.proto. Rather than
// vendor protoc-gen-go's binary file-descriptor output by hand, these
// messages are plain Go structs moved over gRPC through a JSON codec
// registered under the "proto" name (grpc-go resolves the wire codec by
// name via google.golang.org/grpc/encoding, and "proto" is simply
// whichever codec is registered under that name — it does not require
// the message type to satisfy proto.Message). The .proto file alongside
// this one remains the canonical schema document.
package v1

import "encoding/json"

type WeatherCondition struct {
	Season      string `json:"season"`
	StartDay    int32  `json:"startDay"`
	EndDay      int32  `json:"endDay"`
	MinRainDays int32  `json:"minRainDays"`
}

type SearchRequest struct {
	StartSeed         int32              `json:"startSeed"`
	EndSeed           int32              `json:"endSeed"`
	UseLegacyRandom   bool               `json:"useLegacyRandom"`
	WeatherConditions []WeatherCondition `json:"weatherConditions"`
	OutputLimit       int32              `json:"outputLimit"`
}

type Event struct {
	Type         string  `json:"type"`
	Total        int64   `json:"total,omitempty"`
	CheckedCount int64   `json:"checkedCount,omitempty"`
	Progress     float64 `json:"progress,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	Elapsed      float64 `json:"elapsed,omitempty"`
	Seed         int32   `json:"seed,omitempty"`
	TotalFound   int32   `json:"totalFound,omitempty"`
}

// Codec implements google.golang.org/grpc/encoding.Codec for plain Go
// structs, registered under the name "proto" so it becomes grpc-go's
// default wire codec without requiring these types to satisfy
// proto.Message.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (Codec) Name() string                       { return "proto" }
