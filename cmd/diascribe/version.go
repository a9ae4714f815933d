package main

import (
	"fmt"

	"github.com/skillsenselab/diascribe/version"
)

// runVersion prints build version information.
func runVersion() int {
	fmt.Printf("diascribe %s\n", version.Current())
	return 0
}
