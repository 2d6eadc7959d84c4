package main

import (
	"os"

	"github.com/ezerfernandes/blockswap/internal/cmd"
)

func main() {
	cmd.Execute(os.Args[1:], os.Stdout, os.Stderr)
}
