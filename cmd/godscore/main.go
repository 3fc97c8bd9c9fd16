// main holds the entry logic for the godscore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/willshacklett/godscore/cmd"
	"github.com/willshacklett/godscore/internal/ledger"
)

// main is the entry point for the godscore gate.
func main() {
	defer ledger.CloseLedger()

	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
