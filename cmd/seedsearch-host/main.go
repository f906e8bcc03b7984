// seedsearch: Deterministic Weather-Seed Search Engine
// Copyright (C) 2026  seedsearch contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"flag"
	"fmt"
	"log"

	"seedsearch/internal/httpapi"
)

var port = flag.Int("port", 8088, "HTTP API listen port")

func main() {
	flag.Parse()

	server := httpapi.NewServer()
	if err := server.Run(fmt.Sprintf(":%d", *port)); err != nil {
		log.Fatalf("http api server error: %v", err)
	}
}
