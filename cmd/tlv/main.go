package main

import (
	"fmt"
	"os"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/commands"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
)

func main() {
	err := commands.New().Execute()
	_ = debug.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
