// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/resources"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/couponadmin/internal/app/system/tracing"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// background holds what Startup and BuildHandler start and Shutdown stops.
var background struct {
	stopTracing tracing.Shutdown
	cancel      context.CancelFunc
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("count", n))
	}
	timeouts.Configure(timeouts.Config{Medium: appCfg.APITimeout})

	normalize.SetCurrencySymbol(appCfg.CurrencySymbol)
	if appCfg.DefaultImageURL != "" {
		models.DefaultImageURL = appCfg.DefaultImageURL
	}
	viewdata.SetSiteName(appCfg.SiteName)

	stop, err := tracing.Init(ctx, tracing.Config{
		Enabled:     appCfg.OTelEnabled,
		Endpoint:    appCfg.OTelEndpoint,
		Insecure:    appCfg.OTelInsecure,
		ServiceName: "couponadmin",
	}, logger)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
		return err
	}
	background.stopTracing = stop
	return nil
}
