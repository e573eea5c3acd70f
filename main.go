// Package main is the entry point for the oaslint CLI.
package main

import "oaslint.dev/pkg/oaslint/cmd"

func main() {
	cmd.Execute()
}
