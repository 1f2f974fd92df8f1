//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/wizpro/internal/app"
	"github.com/sevigo/wizpro/internal/config"
	"github.com/sevigo/wizpro/internal/core"
	"github.com/sevigo/wizpro/internal/jobs"
	"github.com/sevigo/wizpro/internal/server"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		config.LoadConfig,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
		app.NewReviewer,
		wire.Bind(new(core.Reviewer), new(*jobs.Pool)),
		server.NewServer,
		app.NewApp,
	)
	return &app.App{}, nil, nil
}
