// opsreport generates the single-row daily business report from four
// tabular sources. See internal/cli for the command surface.
package main

import "opsreport/internal/cli"

func main() {
	cli.Execute()
}
