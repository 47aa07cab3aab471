// Package main provides the twfold CLI tool for folding utility-class
// strings into short generated class names.
package main

import (
	"os"

	"github.com/yacobolo/twfold/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error(err.Error())
		os.Exit(1)
	}
}
