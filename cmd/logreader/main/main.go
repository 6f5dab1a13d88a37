package main

import (
	"fmt"
	"os"

	"github.com/palchukovsky/logreader/cmd/logreader"
	"github.com/palchukovsky/logreader/pkg/ui/styles"
)

func main() {
	rootCmd := logreader.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !logreader.IsReported(err) {
			errorStyle := styles.GetStyle("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
