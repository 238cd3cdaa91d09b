package main

import (
	"os"

	"github.com/ppiankov/draftcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
