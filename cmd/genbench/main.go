// cmd/genbench/main.go
package main

import (
	cmd "github.com/genbench/genbench/internal/cli"
)

// main starts the genbench CLI application by delegating to the
// cobra root command defined in the cli package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
