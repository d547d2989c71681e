package main

import (
	"os"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
