// main is the entry point for the sct CLI.
package main

import (
	"os"

	"github.com/roneystein/structured-content-tools/cmd"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/runstore"
)

func main() {
	cmd.SetStoreManager(runstore.Manager)

	err := cmd.Execute()

	// Close store connections and flush profiles even when the command failed.
	runstore.CloseStore()
	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("stopping profiling", profErr)
	}

	if err != nil {
		_, _ = contract.ErrorColor.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
