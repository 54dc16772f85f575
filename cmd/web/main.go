package main

import (
	"mentorhub_backend/internal/app"
)

func main() {
	app.Run()
}
