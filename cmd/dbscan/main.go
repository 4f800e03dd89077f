package main

import (
	"fmt"
	"os"

	"github.com/TrevorS/dbscan/cmd/dbscan/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
