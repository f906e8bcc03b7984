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
	"log"
	"os"
	"os/signal"
	"syscall"

	"seedsearch/pkg/seedsearch/search"
)

var (
	startSeed   = flag.Int64("start", 0, "first seed to check")
	endSeed     = flag.Int64("end", 2147483647, "last seed to check (inclusive)")
	legacy      = flag.Bool("legacy", false, "use the legacy additive seed mixer")
	outputLimit = flag.Int("limit", 100, "stop after this many matches")
	conditions  = flag.String("conditions", "[]", "JSON array of weather conditions, e.g. [{\"season\":\"Spring\",\"startDay\":1,\"endDay\":10,\"minRainDays\":5}]")
)

func main() {
	flag.Parse()

	reqJSON, err := json.Marshal(map[string]any{
		"startSeed":         *startSeed,
		"endSeed":           *endSeed,
		"useLegacyRandom":   *legacy,
		"weatherConditions": json.RawMessage(*conditions),
		"outputLimit":       *outputLimit,
	})
	if err != nil {
		log.Fatalf("could not build request: %v", err)
	}

	req, err := search.ParseRequest(reqJSON)
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("stopping, flushing partial results...")
		cancel()
	}()

	enc := json.NewEncoder(os.Stdout)
	sink := search.EventSink{Emit: func(ev search.Event) {
		_ = enc.Encode(ev)
	}}

	summary, err := search.Search(ctx, req, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("checked %d seeds, found %d matches", summary.CheckedCount, len(summary.Matches))
}
