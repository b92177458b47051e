package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alehernandezlabs/trade-notifier/internal/storage"
	"github.com/alehernandezlabs/trade-notifier/internal/trade"
)

type messageRequest struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  healthServices `json:"services"`
}

type healthServices struct {
	Telegram string `json:"telegram"`
	Database string `json:"database"`
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	tgStatus := "disabled"
	if s.sender.Enabled() {
		tgStatus = "enabled"
	}

	dbStatus := "disabled"
	if s.repo != nil {
		dbStatus = "connected"
		if err := s.repo.Ping(); err != nil {
			dbStatus = "disconnected"
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  healthServices{Telegram: tgStatus, Database: dbStatus},
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := s.deliver("message", nil, req.Message); err != nil {
		writeError(w, http.StatusBadGateway, "failed to deliver message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "message sent"})
}

func (s *Server) handleTradeExecution(w http.ResponseWriter, r *http.Request) {
	var exec trade.Execution
	if err := json.NewDecoder(r.Body).Decode(&exec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := exec.Validate(); err != nil {
		var verr *trade.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": verr.Reason,
				"field": verr.Field,
			})
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	text := trade.Format(&exec)
	if err := s.deliver("trade", &exec, text); err != nil {
		writeError(w, http.StatusBadGateway, "failed to deliver notification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "trade notification sent"})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "activity log disabled")
		return
	}

	limit := parseLimit(r, defaultActivityLimit)
	notifications, err := s.repo.GetRecentNotifications(limit)
	if err != nil {
		s.logger.Error("load notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// deliver sends the text and records the attempt in the activity log
// when it is enabled. Recording failures are logged, never surfaced.
func (s *Server) deliver(kind string, exec *trade.Execution, text string) error {
	sendErr := s.sender.Send(text)

	if s.repo != nil {
		n := &storage.Notification{
			Kind:   kind,
			Text:   text,
			Status: "sent",
		}
		if exec != nil {
			n.Side = string(exec.Side)
			n.Crypto = exec.Crypto
		}
		if sendErr != nil {
			n.Status = "failed"
			cause := sendErr
			if u := errors.Unwrap(sendErr); u != nil {
				cause = u
			}
			n.Error = cause.Error()
		}
		if err := s.repo.SaveNotification(n); err != nil {
			s.logger.Error("record notification", "error", err)
		}
	}

	return sendErr
}
