package main

import (
	"os"

	"github.com/calumari/skuquery/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewPathsCommand()))
}
