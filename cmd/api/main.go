package main

import (
	"log"

	"goflare.io/checkout/config"
)

func main() {

	server, err := InitializeCheckoutService()
	if err != nil {
		log.Fatal(err)
		return
	}

	if err = server.Run(config.ServerStartPort); err != nil {
		log.Fatal(err.Error())
	}

}
