// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command shortwave is the terminal client for the Shortwave catalogue.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
