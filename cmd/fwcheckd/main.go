package main

import (
	"log"

	"github.com/reolink-tools/fwcheck/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
