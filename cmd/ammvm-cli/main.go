// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "ammvm-cli" serves an ammvm node and drives it from the command line.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/ava-labs/ammvm/cmd/ammvm-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("ammvm-cli failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
