package main

import (
	"fmt"
	"os"

	"github.com/kroma-labs/restpath/cmd/restpath/commands"
)

func main() {
	if err := commands.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
