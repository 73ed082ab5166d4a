package main

import (
	"os"

	"github.com/goliatone/go-chanterelle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
