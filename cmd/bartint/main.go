// Bartint - wallpaper-driven top bar colours
//
// Bartint extracts a colour palette from a wallpaper and picks the accent,
// menu, bar and border colours of a GNOME top bar from it.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/bartint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
