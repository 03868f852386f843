package main

import (
	"os"

	"github.com/nodeverse/nodeverse-api/app"
)

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":3000"
	} else {
		port = ":" + port
	}

	return port
}

// @title Nodeverse Backend API
// @version 0.1
// @description JSON API backend for Todo items and Users.
// @license.name MIT
// @host localhost:3000
// @BasePath /api
func main() {
	err := app.SetupAndRunApp(getPort())
	if err != nil {
		panic(err)
	}
}
