package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/exhibition/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Reasons produced by the transport layer itself.
const (
	reasonInvalidBody       = "Invalid request body"
	reasonInvalidMessageID  = "Invalid message ID"
	reasonInvalidDesignerID = "Invalid designer ID"
	reasonInvalidPage       = "Invalid page parameter"
	reasonInvalidPageSize   = "Invalid pageSize parameter"
	reasonNotFound          = "Message not found"
	reasonIncorrectPassword = "Incorrect password"
	reasonVerifyMismatch    = "잘못된 비밀번호입니다. 다시 입력해주세요."
)

// GuestbookService defines the guestbook operations required by the
// MessageHandler.
type GuestbookService interface {
	List(ctx context.Context, page, pageSize int) (*models.MessagePage, error)
	ListByTarget(ctx context.Context, msgType string, targetID int64, page, pageSize int) (*models.MessagePage, error)
	Create(ctx context.Context, in models.CreateMessageInput) (*models.MessageView, error)
	VerifyOwnership(ctx context.Context, id int64, password string) (bool, error)
	Update(ctx context.Context, id int64, password, text string) (*models.MessageView, error)
}

// MessageHandler serves the public guestbook API.
type MessageHandler struct {
	// GuestbookService performs the guestbook operations.
	GuestbookService GuestbookService
	// MaxPageSize caps the pageSize query parameter.
	MaxPageSize int
	// Logger records backend failures.
	Logger *zap.Logger
}

type createMessageRequest struct {
	Writer   string  `json:"writer"`
	Password string  `json:"password"`
	Message  string  `json:"message"`
	Type     *string `json:"type"`
	TargetID *int64  `json:"targetId"`
}

type verifyRequest struct {
	Password string `json:"password"`
}

type updateMessageRequest struct {
	Password string `json:"password"`
	Message  string `json:"message"`
}

// List handles GET /api/messages?page=&pageSize=.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := h.pagination(w, r, models.DefaultPageSize, "pageSize")
	if !ok {
		return
	}

	result, err := h.GuestbookService.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleError(w, err, "Failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListByDesigner handles GET /api/designers/{id}/messages?page=&pageSize=.
//
// Pages are 0-indexed like the global list. The page size may also be given
// as limit; pageSize wins when both are present.
func (h *MessageHandler) ListByDesigner(w http.ResponseWriter, r *http.Request) {
	designerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || designerID <= 0 {
		writeError(w, http.StatusBadRequest, reasonInvalidDesignerID)
		return
	}
	page, pageSize, ok := h.pagination(w, r, models.DefaultTargetPageSize, "pageSize", "limit")
	if !ok {
		return
	}

	result, err := h.GuestbookService.ListByTarget(r.Context(), models.DesignerMessageType, designerID, page, pageSize)
	if err != nil {
		h.handleError(w, err, "Failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/messages.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, reasonInvalidBody)
		return
	}

	created, err := h.GuestbookService.Create(r.Context(), models.CreateMessageInput{
		Writer:   req.Writer,
		Password: req.Password,
		Text:     req.Message,
		Type:     req.Type,
		TargetID: req.TargetID,
	})
	if err != nil {
		h.handleError(w, err, "Failed to create message")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Verify handles POST /api/messages/{id}/verify, a pre-flight ownership
// check that does not modify the message.
func (h *MessageHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, reasonInvalidBody)
		return
	}

	matches, err := h.GuestbookService.VerifyOwnership(r.Context(), id, req.Password)
	if err != nil {
		h.handleError(w, err, "Server error occurred")
		return
	}
	if !matches {
		writeError(w, http.StatusUnauthorized, reasonVerifyMismatch)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Update handles PATCH /api/messages/{id}.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	var req updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, reasonInvalidBody)
		return
	}

	updated, err := h.GuestbookService.Update(r.Context(), id, req.Password, req.Message)
	if err != nil {
		h.handleError(w, err, "Failed to update message")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// pagination reads page and the page size, taken from the first of sizeKeys
// present in the query.
func (h *MessageHandler) pagination(w http.ResponseWriter, r *http.Request, defSize int, sizeKeys ...string) (int, int, bool) {
	page, err := queryInt(r, "page", 0)
	if err != nil || page < 0 {
		writeError(w, http.StatusBadRequest, reasonInvalidPage)
		return 0, 0, false
	}
	sizeKey := sizeKeys[0]
	for _, k := range sizeKeys {
		if r.URL.Query().Has(k) {
			sizeKey = k
			break
		}
	}
	pageSize, err := queryInt(r, sizeKey, defSize)
	if err != nil || pageSize <= 0 {
		writeError(w, http.StatusBadRequest, reasonInvalidPageSize)
		return 0, 0, false
	}
	if h.MaxPageSize > 0 && pageSize > h.MaxPageSize {
		writeError(w, http.StatusBadRequest, "pageSize cannot exceed "+strconv.Itoa(h.MaxPageSize))
		return 0, 0, false
	}
	return page, pageSize, true
}

func messageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, reasonInvalidMessageID)
		return 0, false
	}
	return id, true
}

// handleError maps domain errors to status codes. Anything unrecognised is a
// backend failure: logged in full, reported to the client as failure only.
func (h *MessageHandler) handleError(w http.ResponseWriter, err error, failure string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, reasonNotFound)
	case errors.Is(err, models.ErrOwnership):
		writeError(w, http.StatusUnauthorized, reasonIncorrectPassword)
	default:
		h.Logger.Error(failure, zap.Error(err))
		writeError(w, http.StatusInternalServerError, failure)
	}
}
