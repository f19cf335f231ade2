package main

import (
	"net/http"

	"github.com/flavioribeiro/nalscan/internal/web"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		web.Dependencies(),
		// HTTP Server
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
