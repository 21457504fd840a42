// Package main runs the xlu short link redirect service.
//
//	@title			xlu Short Link API
//	@version		1.0
//	@description	Resolves short codes to their target URLs
//	@host			localhost:8080
//	@BasePath		/
//	@schemes		http https
package main

//go:generate swag init --dir ../.. --generalInfo cmd/server/main.go --output ../../docs --parseInternal

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	_ "github.com/sp3dr4/xlu/docs"
	xlufx "github.com/sp3dr4/xlu/internal/fx"
)

func main() {
	// Values already present in the environment take precedence over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}

	fx.New(
		xlufx.HTTPServerModules,
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
	).Run()
}
