// Package main is the entry point for the bikecast CLI.
package main

import (
	"github.com/bikecast/bikecast/cmd"
	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)

	err := cmd.Execute()

	history.CloseHistory()
	_ = cmd.CloseLogger()

	if err != nil {
		contract.LogFatal("Error", err)
	}
}
