package main

import (
	"log"

	"github.com/adam-gdovin/keysight-local-bot/internal/pkg/app"
)

func main() {
	if err := app.New(); err != nil {
		log.Fatal(err)
	}

	select {}
}
