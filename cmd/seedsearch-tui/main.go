// seedsearch: Deterministic Weather-Seed Search Engine
// Copyright (C) 2026  seedsearch contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"seedsearch/internal/tui"
	"seedsearch/pkg/seedsearch/search"
)

var (
	startSeed   = flag.Int64("start", 0, "first seed to check")
	endSeed     = flag.Int64("end", 2147483647, "last seed to check (inclusive)")
	legacy      = flag.Bool("legacy", false, "use the legacy additive seed mixer")
	outputLimit = flag.Int("limit", 100, "stop after this many matches")
	conditions  = flag.String("conditions", "[]", "JSON array of weather conditions")
)

func main() {
	flag.Parse()

	var wireConds []struct {
		Season      string `json:"season"`
		StartDay    int    `json:"startDay"`
		EndDay      int    `json:"endDay"`
		MinRainDays int    `json:"minRainDays"`
	}
	if err := json.Unmarshal([]byte(*conditions), &wireConds); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -conditions JSON: %v\n", err)
		os.Exit(1)
	}

	reqJSON, _ := json.Marshal(map[string]any{
		"startSeed":         *startSeed,
		"endSeed":           *endSeed,
		"useLegacyRandom":   *legacy,
		"weatherConditions": wireConds,
		"outputLimit":       *outputLimit,
	})
	req, err := search.ParseRequest(reqJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid request: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, func(ctx context.Context, sink search.Sink) (search.Summary, error) {
		return search.Search(ctx, req, sink)
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}
