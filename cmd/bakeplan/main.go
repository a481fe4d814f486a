package main

import (
	"github.com/vsinha/bakeplan/pkg/interfaces/cli/commands"
)

func main() {
	commands.Execute()
}
