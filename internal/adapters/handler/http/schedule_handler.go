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

type ScheduleHandler struct {
	service       ports.ScheduleService
	memberService ports.MemberService
}

func NewScheduleHandler(service ports.ScheduleService, memberService ports.MemberService) *ScheduleHandler {
	return &ScheduleHandler{
		service:       service,
		memberService: memberService,
	}
}

const dateLayout = "2006-01-02"

type createScheduleRequest struct {
	Dates []string `json:"dates"`
	Title string   `json:"title"`
}

// Create godoc
// @Summary      Creates practice schedules
// @Description  One date creates a standalone schedule; several dates open a poll over the batch.
// @Tags         schedules
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /api/schedules [post]
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Dates) == 0 {
		http.Error(w, "at least one date is required", http.StatusBadRequest)
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			http.Error(w, "invalid date: "+raw, http.StatusBadRequest)
			return
		}
		dates = append(dates, date)
	}

	if len(dates) == 1 {
		schedule, err := h.service.CreateSingle(r.Context(), dates[0], req.Title, memberID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]*domain.Schedule{schedule})
		return
	}

	schedules, err := h.service.CreateBatch(r.Context(), ports.CreateBatchInput{
		Dates:   dates,
		Title:   req.Title,
		Creator: memberID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(schedules)
}

func (h *ScheduleHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(standings)
}

func (h *ScheduleHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	voted, err := h.service.ToggleVote(r.Context(), scheduleID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"voted": voted})
}

// ClosePoll godoc
// @Summary      Resolves a poll
// @Description  Tallies the votes, closes every candidate of the batch and marks the winner as the club event. Chairman only.
// @Tags         schedules
// @Accept       json
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /api/schedules/polls/{batchID}/close [post]
func (h *ScheduleHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	winner, err := h.service.ClosePoll(r.Context(), batchID, actor)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrBatchNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(winner)
}

func (h *ScheduleHandler) CloseSingle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.CloseSingle(r.Context(), scheduleID, actor)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrScheduleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *ScheduleHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBatch(r.Context(), batchID, actor); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrBatchNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) DeleteSingle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid schedule id", http.StatusBadRequest)
		return
	}

	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSingle(r.Context(), scheduleID, actor); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrScheduleNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
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
