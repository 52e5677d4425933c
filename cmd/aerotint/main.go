// Aerotint - marker-based recolouring for Aero-style XFCE themes
//
// Aerotint derives an accent colour from a preset or hex value and
// propagates it into the theme's stylesheet and window decorations.
//
// Copyright (c) 2026 The aerotint authors
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/aeroglass/aerotint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
