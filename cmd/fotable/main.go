// Command fotable lays out the first table of an XSL-FO or HTML
// document, and prints the resolved column widths, the page breaks
// and the geometry of the cells.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
