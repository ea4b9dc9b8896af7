package main

import (
	"os"

	"testgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
