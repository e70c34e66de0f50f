/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command tsimtsum optimizes style sheets and prints them with span tracking.
package main

import (
	"os"

	"bennypowers.dev/tsimtsum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
