// Package main is the entry point for the bundlepatch CLI.
package main

import "bundlepatch.dev/pkg/bundlepatch/cmd"

func main() {
	cmd.Execute()
}
