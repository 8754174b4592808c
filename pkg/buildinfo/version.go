// Package buildinfo holds version information stamped at build time:
//
//	go build -ldflags "-X github.com/toldot/toldot/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/toldot/toldot/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/toldot/toldot/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/toldot
package buildinfo

import "fmt"

// Set via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
