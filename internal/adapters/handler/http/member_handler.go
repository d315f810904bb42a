package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
)

type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{
		service: service,
	}
}

func (h *MemberHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	member, err := h.service.GetByID(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch member: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch members: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}

type updateProfileRequest struct {
	Nickname string `json:"nickname"`
	Position string `json:"position"`
}

// UpdateMe godoc
// @Summary      Updates the authenticated member's profile
// @Description  Sets the nickname and position chosen during onboarding
// @Tags         members
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /api/members/me [patch]
func (h *MemberHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.service.UpdateProfile(r.Context(), memberID, ports.UpdateProfileInput{
		Nickname: req.Nickname,
		Position: req.Position,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(member)
}
