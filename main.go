// Command macup automates macOS maintenance: package manager updates,
// system updates, cache and disk cleanup, and index rebuilds, with live
// per-step progress and an end-of-run summary.
package main

import (
	"os"

	"macup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
