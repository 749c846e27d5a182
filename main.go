/*
Copyright © 2026 Simon Robinson
*/
package main

import "github.com/simonrob/opentimetables-utils/cmd"

func main() {
	cmd.Execute()
}
