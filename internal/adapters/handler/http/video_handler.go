package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baetodi/club/internal/adapters/video/youtube"
	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type VideoHandler struct {
	service       ports.VideoService
	memberService ports.MemberService
}

func NewVideoHandler(service ports.VideoService, memberService ports.MemberService) *VideoHandler {
	return &VideoHandler{
		service:       service,
		memberService: memberService,
	}
}

type addVideoRequest struct {
	URL string `json:"url"`
}

type videoResponse struct {
	*domain.Video
	ThumbnailURL string `json:"thumbnail_url"`
}

func toVideoResponse(v *domain.Video) videoResponse {
	return videoResponse{Video: v, ThumbnailURL: youtube.ThumbnailURL(v.YouTubeID)}
}

func (h *VideoHandler) Add(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized: missing member context", http.StatusUnauthorized)
		return
	}

	var req addVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	video, err := h.service.Add(r.Context(), ports.AddVideoInput{
		URL:     req.URL,
		Creator: memberID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidVideoURL) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toVideoResponse(video))
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]videoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// BackfillTitles godoc
// @Summary      Fills in missing video titles
// @Description  Looks up the title for every archived video that has none and reports how many were filled.
// @Tags         videos
// @Accept       json
// @Success      200
// @Router       /api/videos/backfill-titles [post]
func (h *VideoHandler) BackfillTitles(w http.ResponseWriter, r *http.Request) {
	filled, err := h.service.BackfillTitles(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"filled": filled})
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid video id", http.StatusBadRequest)
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
		if errors.Is(err, domain.ErrVideoNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
