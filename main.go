package main

import (
	"os"

	"github.com/CharbelDaher34/hair-AI-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
