// Package version provides the build-time version string for the
// todo-mcp-server binary. The Version variable is overridden at build time
// via -ldflags:
//
//	go build -ldflags "-X github.com/vojtapolasek/todo-mcp-server/internal/version.Version=v0.1.0" .
package version

import (
	"fmt"
	"runtime"
)

// Version is set at build time via -ldflags.
// It defaults to "dev" for local builds without ldflags.
var Version = "dev"

// String returns a human-readable version string including OS and architecture.
// Example: "todo-mcp-server v0.1.0 (linux/amd64)"
func String() string {
	return fmt.Sprintf("todo-mcp-server %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
