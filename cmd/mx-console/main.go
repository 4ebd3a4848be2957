// Command mx-console registers sample managed resources and lets an operator
// inspect and drive them from the command line or an interactive shell.
package main

import (
	"os"

	"github.com/anoideaopen/mx/core/logger"
)

func main() {
	if err := newRootCommand(newConsole()).Execute(); err != nil {
		logger.For("console").Debug(err)
		os.Exit(1)
	}
}
