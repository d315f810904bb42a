package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NoticeHandler struct {
	service       ports.NoticeService
	memberService ports.MemberService
}

func NewNoticeHandler(service ports.NoticeService, memberService ports.MemberService) *NoticeHandler {
	return &NoticeHandler{
		service:       service,
		memberService: memberService,
	}
}

type noticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *NoticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	notice, err := h.service.Create(r.Context(), ports.CreateNoticeInput{
		Title:   req.Title,
		Content: req.Content,
		Creator: memberID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(notice)
}

func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notices)
}

func (h *NoticeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notice id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	notice, err := h.service.Update(r.Context(), id, actor, ports.UpdateNoticeInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrNoticeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notice)
}

func (h *NoticeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notice id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, actor); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrNoticeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoticeHandler) actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return domain.Actor{}, false
	}

	actor, err := h.memberService.ActorFor(r.Context(), memberID)
	if err != nil {
		http.Error(w, "Failed to resolve member: "+err.Error(), http.StatusUnauthorized)
		return domain.Actor{}, false
	}
	return actor, true
}
