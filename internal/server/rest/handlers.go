package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/models"
	"github.com/dmitrijs2005/daylog/internal/server/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.users.Authenticate(req.Username, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := auth.GenerateToken(req.Username, s.secretKey, s.sessionTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(s.sessionTTL),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		list []models.Entry
		err  error
	)
	if dateKey := r.URL.Query().Get("date"); dateKey != "" {
		if _, perr := models.ParseDateKey(dateKey); perr != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		list, err = s.store.GetByDate(ctx, dateKey)
	} else {
		list, err = s.store.GetAll(ctx)
	}
	if err != nil {
		s.log.Error(ctx, "list entries failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, list)
}

type createEntryRequest struct {
	Text        string              `json:"content"`
	Category    models.Category     `json:"category"`
	Attachments []attachmentPayload `json:"attachments"`
}

type attachmentPayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	attachments := make([]models.Attachment, 0, len(req.Attachments))
	for _, ap := range req.Attachments {
		payload, err := models.DecodePayload(ap.URL)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid attachment payload")
			return
		}
		att := models.NewAttachment(ap.Name, ap.Type, nil)
		att.Payload = payload
		attachments = append(attachments, att)
	}

	entry := models.NewEntry(req.Text, req.Category, attachments, time.Now())
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.Upsert(ctx, entry); err != nil {
		s.log.Error(ctx, "save entry failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete entry failed", "id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type syncRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := OwnerFromContext(ctx)

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if _, err := models.ParseDateKey(req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	summary, err := s.engine.RunSync(ctx, owner, req.Date)
	if errors.Is(err, common.ErrSyncInProgress) {
		writeError(w, http.StatusConflict, "sync already in progress")
		return
	}
	if err != nil {
		s.log.Error(ctx, "sync failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	report, err := s.store.LatestReport(ctx, start, end)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no report for range")
		return
	}
	if err != nil {
		s.log.Error(ctx, "get report failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := report.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if report.CreatedAt == 0 {
		report.CreatedAt = time.Now().UnixMilli()
	}

	if err := s.store.SaveReport(ctx, report); err != nil {
		s.log.Error(ctx, "save report failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// handleDownloadAttachment streams the bytes behind a remote attachment
// reference back to the UI. Pass-through only; not part of sync correctness.
func (s *Server) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing ref")
		return
	}

	data, err := s.remote.ReadObject(ctx, ref)
	if errors.Is(err, common.ErrNotFound) {
		writeError(w, http.StatusNotFound, "attachment not found")
		return
	}
	if err != nil {
		s.log.Error(ctx, "attachment read failed", "ref", ref, "error", err.Error())
		writeError(w, http.StatusBadGateway, "remote read failed")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
