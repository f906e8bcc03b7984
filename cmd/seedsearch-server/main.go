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

	"seedsearch/internal/grpcapi"
)

var port = flag.Int("port", 9088, "gRPC listen port")

func main() {
	flag.Parse()

	addr := fmt.Sprintf("0.0.0.0:%d", *port)
	if err := grpcapi.Run(addr); err != nil {
		log.Fatalf("grpc server error: %v", err)
	}
}
