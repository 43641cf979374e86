package main

import (
	"github.com/kvisle/taskbridge/frontend/cli/cmd"
)

func main() {
	cmd.Execute()
}
