package main

import (
	"github.com/reolink-tools/fwcheck/pkg/cli"
)

func main() {
	cli.Execute()
}
