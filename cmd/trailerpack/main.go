// TrailerPack - trailer load planner
//
// A command-line tool that packs rectangular cargo into trailer volumes
// using a greedy placement engine, with CSV/Excel import and PDF, Excel,
// DXF and QR-label export.
//
// Build:
//   go build -o trailerpack ./cmd/trailerpack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o trailerpack.exe ./cmd/trailerpack
//   GOOS=darwin  GOARCH=arm64 go build -o trailerpack-darwin ./cmd/trailerpack

package main

import (
	"github.com/piwi3910/TrailerPack/internal/cli"
)

func main() {
	cli.Execute()
}
