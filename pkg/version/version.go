// Package version holds the CLI version, set at build time via ldflags.
package version

// Version is populated by the linker:
//
//	go build -ldflags "-X github.com/matrixci/matrixci/pkg/version.Version=1.2.3"
var Version = "0.0.1"
