// Package main is the entry point for the catmerge application
package main

import "catmerge/cmd"

func main() {
	cmd.Execute()
}
