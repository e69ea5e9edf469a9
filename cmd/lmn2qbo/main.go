package main

import (
	"os"

	"github.com/skilledgarden/lmn2qbo/cmd/lmn2qbo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
