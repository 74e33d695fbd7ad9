// Package main is the entry point for the vhpidbg CLI.
package main

import "vhpidbg.dev/pkg/vhpidbg/cmd"

func main() {
	cmd.Execute()
}
