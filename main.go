// main is the entry point for the fundboard CLI.
package main

import (
	"github.com/cfudash/fundboard/cmd"
	"github.com/cfudash/fundboard/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run fundboard", err)
	}
}
