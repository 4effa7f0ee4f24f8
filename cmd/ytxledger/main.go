package main

import (
	"fmt"
	"os"

	"github.com/YtxCash/YtxModel/cmd/ytxledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
