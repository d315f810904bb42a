package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MatchHandler struct {
	service       ports.MatchService
	memberService ports.MemberService
}

func NewMatchHandler(service ports.MatchService, memberService ports.MemberService) *MatchHandler {
	return &MatchHandler{
		service:       service,
		memberService: memberService,
	}
}

type createMatchRequest struct {
	Date      string      `json:"date"`
	TeamAName string      `json:"team_a_name"`
	TeamBName string      `json:"team_b_name"`
	TeamA     []uuid.UUID `json:"team_a"`
	TeamB     []uuid.UUID `json:"team_b"`
	ScoreA    int         `json:"score_a"`
	ScoreB    int         `json:"score_b"`
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		http.Error(w, "invalid date: "+req.Date, http.StatusBadRequest)
		return
	}

	match, err := h.service.Create(r.Context(), ports.CreateMatchInput{
		Date:      date,
		TeamAName: req.TeamAName,
		TeamBName: req.TeamBName,
		TeamA:     req.TeamA,
		TeamB:     req.TeamB,
		ScoreA:    req.ScoreA,
		ScoreB:    req.ScoreB,
		Creator:   memberID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

func (h *MatchHandler) MemberRecord(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}

	record, err := h.service.MemberRecord(r.Context(), memberID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}

	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	actor, err := h.memberService.ActorFor(r.Context(), memberID)
	if err != nil {
		http.Error(w, "Failed to resolve member: "+err.Error(), http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), id, actor); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrMatchNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
