// bootswitch manipulates image bank files for the first-stage switcher:
// packing images with their headers, inspecting header state and dry-running
// the selection policy.
//
// The tool only ever touches bank files on disk; flashing them to a device
// is somebody else's job.
package main

import (
	"fmt"
	"os"
	"sort"
)

type command struct {
	descr string
	main  func(cmd string, args []string) error
}

var commands = map[string]command{
	"pack":    {"add an image with a fresh header to a bank file", packMain},
	"inspect": {"decode and print the image headers of a bank file", inspectMain},
	"choose":  {"dry-run the boot selection over a bank file", chooseMain},
}

func printCommandList() {
	names := make([]string, 0, len(commands))
	maxLen := 0
	for name := range commands {
		names = append(names, name)
		if maxLen < len(name) {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	uw := os.Stderr
	uw.WriteString("Usage:\n  bootswitch COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, commands[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printCommandList()
		return
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		printCommandList()
		os.Exit(1)
	}

	if err := cmd.main(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "bootswitch %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
