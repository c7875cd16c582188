package main

import (
	"fmt"
	"os"

	"tweetmoji/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tweetmoji: %v\n", err)
		os.Exit(1)
	}
}
