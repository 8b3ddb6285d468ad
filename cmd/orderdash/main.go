// Command orderdash browses the purchase orders parsed by the auto-order
// backend.
package main

import (
	"auto-order-dashboard/internal/cli"
)

// set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
