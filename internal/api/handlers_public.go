package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"huonganh/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// bookingRequest is the public form payload.
type bookingRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Service        string `json:"service"`
	Message        string `json:"message"`
	BookingDate    string `json:"booking_date"` // YYYY-MM-DD
	BookingTime    string `json:"booking_time"` // HH:MM
	Method         string `json:"notification_method"`
	TelegramChatID string `json:"telegram_chat_id"`
}

// validate mirrors the form rules: required name/phone/service/date/time,
// optional email checked against a basic pattern, and a Telegram chat
// reference required when that channel is chosen.
func (req *bookingRequest) validate(knownServices []string) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Vui lòng nhập họ tên"
	}
	if strings.TrimSpace(req.Phone) == "" {
		return "Vui lòng nhập số điện thoại"
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		return "Email không hợp lệ"
	}
	if req.Service == "" {
		return "Vui lòng chọn dịch vụ"
	}
	found := false
	for _, s := range knownServices {
		if s == req.Service {
			found = true
			break
		}
	}
	if !found {
		return "Dịch vụ không hợp lệ"
	}
	if req.BookingDate == "" {
		return "Vui lòng chọn ngày"
	}
	if req.BookingTime == "" {
		return "Vui lòng chọn giờ"
	}
	if req.Method == models.MethodTelegram && req.TelegramChatID == "" {
		return "Vui lòng nhập Telegram chat id"
	}
	return ""
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	titles, err := s.catalog.ServiceTitles(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("service list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if msg := req.validate(titles); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Ngày không hợp lệ")
		return
	}

	method := req.Method
	if method == "" {
		method = models.MethodSMS
	}

	booking := &models.Booking{
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		Service:        req.Service,
		Message:        strings.TrimSpace(req.Message),
		BookingDate:    date,
		BookingTime:    req.BookingTime,
		Method:         method,
		TelegramChatID: strings.TrimSpace(req.TelegramChatID),
	}

	if err := s.bookings.Create(r.Context(), booking); err != nil {
		s.logger.Error().Err(err).Msg("booking create failed")
		writeError(w, http.StatusInternalServerError, "Có lỗi xảy ra. Vui lòng thử lại sau.")
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ListServices(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("service list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *HTTPServer) handleListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := s.store.ListGalleryImages(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("gallery list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, images)
}

func (s *HTTPServer) handleListAbout(w http.ResponseWriter, r *http.Request) {
	sections, err := s.store.ListAboutSections(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("about list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if sections == nil {
		sections = []models.AboutSection{}
	}
	writeJSON(w, http.StatusOK, sections)
}
