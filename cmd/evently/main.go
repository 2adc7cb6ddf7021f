// @title Evently API
// @version 1.0
// @description University event management: accounts, event publishing and attendance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import "evently/cmd/evently/cmd"

func main() {
	cmd.Execute()
}
