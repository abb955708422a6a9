// miniml - parser front end and Go back end for the MiniML language
package main

import (
	"os"

	"github.com/chazu/miniml/cmd/miniml/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
