package main

import (
	"github.com/lucianotavernard/order-svc/internal/app"
	"github.com/lucianotavernard/order-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
