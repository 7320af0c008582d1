// Command lunte-lint runs the lunte JavaScript linter for editors, CI and
// MCP clients.
package main

import (
	"github.com/holepunchto/lunte/internal/cmd"
)

// Version is set at build time: -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
