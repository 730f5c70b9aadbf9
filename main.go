package main

import "art-auction-api/app"

func main() {
	app.Run()
}
