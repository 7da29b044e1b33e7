// Package buildinfo exposes build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/authkeeper/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"cmp"
	"fmt"
	"io"
)

var (
	Version   string
	BuildDate string
	Commit    string
)

// PrintBuildData writes version, date and commit to w, using "N/A" for
// values that were not set at build time.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", cmp.Or(Version, "N/A"))
	fmt.Fprintf(w, "Build date: %s\n", cmp.Or(BuildDate, "N/A"))
	fmt.Fprintf(w, "Build commit: %s\n", cmp.Or(Commit, "N/A"))
}
