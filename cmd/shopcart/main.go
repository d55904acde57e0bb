package main

import (
	"os"

	"github.com/cristianoliveira/shopcart/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
