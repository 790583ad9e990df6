// Command quotanorm normalizes capacity request exports from the command
// line. It accepts the same inputs as the web service: a raw tracker export
// or a pre-normalized table, pasted via stdin or read from a file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
