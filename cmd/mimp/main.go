// Command mimp is the mimp static checker CLI.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(2)
	}
	os.Exit(exitCode)
}
