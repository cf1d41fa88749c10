package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"huonganh/internal/database"
	"huonganh/internal/models"
	"huonganh/internal/service"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *HTTPServer) handleAdminListBookings(w http.ResponseWriter, r *http.Request) {
	filter := database.BookingFilter{
		OrderBy:    "created_at",
		Descending: true,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidStatus(status) {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = status
	}
	if r.URL.Query().Get("visible") == "true" {
		filter.OnlyVisible = true
		filter.OrderBy = "booking_date"
		filter.Descending = false
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	bookings, err := s.store.ListBookings(r.Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("booking list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, notified, err := s.bookings.Transition(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, database.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
		return
	case err != nil:
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("transition failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"booking":  booking,
		"notified": notified,
	})
}

func (s *HTTPServer) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	if err := s.bookings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("booking delete failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	path, err := s.exporter.ExportBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer os.Remove(path)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	http.ServeFile(w, r, path)
}

// --- services ---

func (s *HTTPServer) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if svc.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := s.store.CreateService(r.Context(), &svc); err != nil {
		s.logger.Error().Err(err).Msg("service create failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (s *HTTPServer) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	svc.ID = id
	if err := s.store.UpdateService(r.Context(), &svc); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("service update failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *HTTPServer) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteService(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("service delete failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Direction string `json:"direction"`
}

func (req *reorderRequest) valid() bool {
	return req.Direction == service.DirectionUp || req.Direction == service.DirectionDown
}

func (s *HTTPServer) handleReorderService(w http.ResponseWriter, r *http.Request) {
	s.handleReorder(w, r, s.catalog.ReorderService)
}

func (s *HTTPServer) handleReorderGalleryImage(w http.ResponseWriter, r *http.Request) {
	s.handleReorder(w, r, s.catalog.ReorderGalleryImage)
}

func (s *HTTPServer) handleReorderAboutSection(w http.ResponseWriter, r *http.Request) {
	s.handleReorder(w, r, s.catalog.ReorderAboutSection)
}

func (s *HTTPServer) handleReorder(w http.ResponseWriter, r *http.Request, reorder func(ctx context.Context, id int64, direction string) error) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}
	if err := reorder(r.Context(), id, req.Direction); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Str("direction", req.Direction).Msg("reorder failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- gallery ---

func (s *HTTPServer) handleCreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img models.GalleryImage
	if err := json.NewDecoder(r.Body).Decode(&img); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if img.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "image_url is required")
		return
	}
	if err := s.store.CreateGalleryImage(r.Context(), &img); err != nil {
		s.logger.Error().Err(err).Msg("gallery create failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (s *HTTPServer) handleUpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var img models.GalleryImage
	if err := json.NewDecoder(r.Body).Decode(&img); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	img.ID = id
	if err := s.store.UpdateGalleryImage(r.Context(), &img); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("gallery update failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (s *HTTPServer) handleDeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteGalleryImage(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("gallery delete failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- about ---

func (s *HTTPServer) handleCreateAboutSection(w http.ResponseWriter, r *http.Request) {
	var section models.AboutSection
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if section.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := s.store.CreateAboutSection(r.Context(), &section); err != nil {
		s.logger.Error().Err(err).Msg("about create failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (s *HTTPServer) handleUpdateAboutSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var section models.AboutSection
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	section.ID = id
	if err := s.store.UpdateAboutSection(r.Context(), &section); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "section not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("about update failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *HTTPServer) handleDeleteAboutSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteAboutSection(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "section not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("about delete failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- notifications ---

func (s *HTTPServer) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	filter := database.NotificationFilter{
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	notifications, err := s.store.ListNotifications(r.Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("notification list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *HTTPServer) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountUnreadNotifications(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("unread count failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *HTTPServer) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.MarkNotificationRead(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("mark read failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- stats ---

func (s *HTTPServer) handleRevenueStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.RecentSummary(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("revenue summary failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
