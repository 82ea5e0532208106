// Package main provides the entry point for RSim.
// RSim is a simulated RISC-style CPU core built around generic
// bit-field packing over 32-bit instruction words.
//
// For the full CLI, use: go run ./cmd/rsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("RSim - RISC-style CPU core simulator")
	fmt.Println("")
	fmt.Println("Usage: rsim [options] <program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v       Dump each decoded instruction before running")
	fmt.Println("  -trace   Print a per-instruction execution trace")
	fmt.Println("  -max     Maximum instructions to execute")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rsim' instead.")
	}
}
