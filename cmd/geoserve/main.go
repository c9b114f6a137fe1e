// Copyright 2025 The GeoServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the city suggestion server, HTTP API and CLI.

GeoServe suggests North American cities for a typed name prefix. Matches are
ranked by population, or by great circle distance when the caller supplies a
point. The dataset is a GeoNames tab separated dump loaded fully into memory.

# Usage

Start the MessagePack IPC server on stdin/stdout:

	geoserve serve --data cities_canada-usa.tsv

Serve the HTTP API:

	geoserve http --addr :2345

	curl 'localhost:2345/suggestions?q=Lond&latitude=43.70011&longitude=-79.4163'

Query once, or explore interactively:

	geoserve query tor --lat 43.7 --lon -79.4 --limit 5
	geoserve repl

Running geoserve without a subcommand starts the IPC server.

# Configuration

Configuration lives in a TOML file, created with defaults when missing:

	[server]
	max_limit = 50
	min_prefix = 1
	max_prefix = 100
	capitalize = true

	[data]
	path = "cities_canada-usa.tsv"
	skip_header = true

	[data.regions]
	"08" = "Ontario"

	[http]
	addr = ":2345"

	[cli]
	default_limit = 10

Sending SIGHUP to the serve or http process reloads the dataset. The new
engine is published only after it is fully built.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
