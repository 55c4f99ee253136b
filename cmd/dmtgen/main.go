// Command dmtgen generates Go packages from DMT blueprints.
package main

import "github.com/syssam/dmtgen/cmd/dmtgen/internal/command"

func main() {
	command.Execute()
}
