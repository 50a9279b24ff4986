// Package main is the entry point of the benchboard CLI.
package main

import (
	"github.com/huangsam/benchboard/cmd"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/iostore"
)

func main() {
	err := cmd.Execute()
	iostore.CloseStores()
	if err != nil {
		contract.LogFatal("Cannot run benchboard", err)
	}
}
