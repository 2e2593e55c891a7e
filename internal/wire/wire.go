package wire

import (
	"fmt"
	"net/http"

	"padel-booking/internal/adaptor"
	"padel-booking/internal/data/repository"
	"padel-booking/internal/usecase"
	"padel-booking/pkg/metrics"
	"padel-booking/pkg/middleware"
	"padel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, logger *zap.Logger) (*App, error) {
	renderer, err := adaptor.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	signer, err := utils.NewCookieSigner(config.Session.Secret)
	if err != nil {
		return nil, fmt.Errorf("cookie signer: %w", err)
	}
	if config.Session.Secret == "" {
		logger.Warn("SESSION_SECRET is empty, sessions will not survive a restart")
	}

	service := usecase.NewService(repo, config, m, logger)
	handler := adaptor.NewHandler(service, renderer, config, logger)

	return &App{
		Router: setupRouter(handler, signer, config, m, logger),
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	signer *utils.CookieSigner,
	config *utils.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics(m))

	r.NotFound(handler.NotFound)

	wireBooking(r, handler.Booking, signer, config, logger)
	wirePayment(r, handler.Checkout)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if config.Metrics.Enabled {
		r.Method(http.MethodGet, config.Metrics.Path, m.Handler())
	}

	return r
}
