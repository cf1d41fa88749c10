package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"huonganh/internal/bot"
	"huonganh/internal/config"
	"huonganh/internal/domain"
	"huonganh/internal/events"
	"huonganh/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the public site endpoints, the admin dashboard API and
// the Telegram webhook.
type HTTPServer struct {
	cfg      config.APIConfig
	store    domain.Store
	bookings *service.BookingService
	catalog  *service.CatalogService
	stats    *service.StatsService
	exporter *bot.Exporter
	chat     *bot.Handler
	eventBus *events.EventBus
	streams  *streamHub
	server   *http.Server
	auth     *HTTPAuth
	limiter  *publicLimiter
	logger   *zerolog.Logger
}

func NewHTTPServer(
	cfg config.APIConfig,
	store domain.Store,
	bookings *service.BookingService,
	catalog *service.CatalogService,
	stats *service.StatsService,
	exporter *bot.Exporter,
	chat *bot.Handler,
	eventBus *events.EventBus,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		store:    store,
		bookings: bookings,
		catalog:  catalog,
		stats:    stats,
		exporter: exporter,
		chat:     chat,
		eventBus: eventBus,
		streams:  newStreamHub(eventBus),
		auth:     NewHTTPAuth(cfg),
		limiter:  newPublicLimiter(cfg.RateLimit),
		logger:   logger,
	}

	r := mux.NewRouter()

	// Public surface: booking form plus read-only site content.
	r.HandleFunc("/api/v1/bookings", srv.limiter.wrap(srv.handleCreateBooking)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/services", srv.handleListServices).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/gallery", srv.handleListGallery).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/about", srv.handleListAbout).Methods(http.MethodGet)

	// Telegram webhook feeding the same interpreter as the polling bot.
	r.HandleFunc("/webhook/telegram", srv.handleTelegramWebhook).Methods(http.MethodPost)

	// Admin dashboard surface, API-key protected.
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(srv.auth.Middleware)

	admin.HandleFunc("/bookings", srv.handleAdminListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", srv.handleUpdateBookingStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", srv.handleDeleteBooking).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/export", srv.handleExportBookings).Methods(http.MethodPost)

	admin.HandleFunc("/services", srv.handleCreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", srv.handleUpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", srv.handleDeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/services/{id}/reorder", srv.handleReorderService).Methods(http.MethodPost)

	admin.HandleFunc("/gallery", srv.handleCreateGalleryImage).Methods(http.MethodPost)
	admin.HandleFunc("/gallery/{id}", srv.handleUpdateGalleryImage).Methods(http.MethodPut)
	admin.HandleFunc("/gallery/{id}", srv.handleDeleteGalleryImage).Methods(http.MethodDelete)
	admin.HandleFunc("/gallery/{id}/reorder", srv.handleReorderGalleryImage).Methods(http.MethodPost)

	admin.HandleFunc("/about", srv.handleCreateAboutSection).Methods(http.MethodPost)
	admin.HandleFunc("/about/{id}", srv.handleUpdateAboutSection).Methods(http.MethodPut)
	admin.HandleFunc("/about/{id}", srv.handleDeleteAboutSection).Methods(http.MethodDelete)
	admin.HandleFunc("/about/{id}/reorder", srv.handleReorderAboutSection).Methods(http.MethodPost)

	admin.HandleFunc("/notifications", srv.handleListNotifications).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/unread-count", srv.handleUnreadCount).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/{id}/read", srv.handleMarkNotificationRead).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/stream", srv.handleNotificationStream).Methods(http.MethodGet)

	admin.HandleFunc("/stats/revenue", srv.handleRevenueStats).Methods(http.MethodGet)

	r.HandleFunc("/healthz", srv.handleHealth).Methods(http.MethodGet)

	handler := requestLogMiddleware(logger, r)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the composed handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
