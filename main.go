package main

import (
	"log"

	"hms/cmd"
	_ "hms/migrations"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
