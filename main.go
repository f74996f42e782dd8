package main

import "bid-approval-api/app"

func main() {
	app.Run()
}
