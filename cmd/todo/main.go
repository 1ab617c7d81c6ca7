package main

import (
	"os"

	"github.com/idilsaglam/localtodo/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
