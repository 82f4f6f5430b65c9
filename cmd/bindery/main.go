// Command bindery manages a corpus of binding documents from the shell:
// reading and writing documents, linting the corpus and inspecting its
// reference graph.
package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

// fatal prints a message with its cause to stderr and exits nonzero.
// Cobra Run funcs use it for any error that ends the command.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
