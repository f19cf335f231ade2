package web

import (
	"log"

	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/flavioribeiro/nalscan/internal/web/handlers"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Dependencies() fx.Option {
	var c entities.Config
	err := envconfig.Process("nalscan", &c)
	if err != nil {
		log.Fatal(err.Error())
	}

	return fx.Options(
		// HTTP Server
		fx.Provide(NewHTTPServer),

		// HTTP router
		fx.Provide(NewServeMux),

		// HTTP handlers
		fx.Provide(handlers.NewIndexHandler),
		fx.Provide(handlers.NewAnnexBScanHandler),
		fx.Provide(handlers.NewMpegTSScanHandler),

		// Controllers
		fx.Provide(controllers.NewAnnexBController),
		fx.Provide(controllers.NewMpegTSController),
		fx.Provide(controllers.NewEIA608Controller),
		fx.Provide(controllers.NewWebRTCController),

		// Mappers
		fx.Provide(mapper.NewMapper),

		// Logging, Config constructors
		fx.Provide(func() *zap.SugaredLogger {
			logger, _ := zap.NewProduction()
			return logger.Sugar()
		}),
		fx.Provide(func() *entities.Config {
			return &c
		}),
	)
}
