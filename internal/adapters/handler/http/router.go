package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	JWTSecret       string
	AuthHandler     *AuthHandler
	MemberHandler   *MemberHandler
	ScheduleHandler *ScheduleHandler
	NoticeHandler   *NoticeHandler
	MatchHandler    *MatchHandler
	VideoHandler    *VideoHandler
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/google/callback", cfg.AuthHandler.GoogleCallback)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.JWTSecret))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", cfg.MemberHandler.List)
			r.Get("/me", cfg.MemberHandler.GetMe)
			r.Patch("/me", cfg.MemberHandler.UpdateMe)
			r.Get("/{id}/record", cfg.MatchHandler.MemberRecord)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", cfg.ScheduleHandler.Standings)
			r.Post("/", cfg.ScheduleHandler.Create)
			r.Post("/polls/{batchID}/close", cfg.ScheduleHandler.ClosePoll)
			r.Delete("/polls/{batchID}", cfg.ScheduleHandler.DeleteBatch)
			r.Post("/{id}/close", cfg.ScheduleHandler.CloseSingle)
			r.Post("/{id}/votes", cfg.ScheduleHandler.ToggleVote)
			r.Delete("/{id}", cfg.ScheduleHandler.DeleteSingle)
		})

		r.Route("/notices", func(r chi.Router) {
			r.Get("/", cfg.NoticeHandler.List)
			r.Post("/", cfg.NoticeHandler.Create)
			r.Put("/{id}", cfg.NoticeHandler.Update)
			r.Delete("/{id}", cfg.NoticeHandler.Delete)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", cfg.MatchHandler.List)
			r.Post("/", cfg.MatchHandler.Create)
			r.Delete("/{id}", cfg.MatchHandler.Delete)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", cfg.VideoHandler.List)
			r.Post("/", cfg.VideoHandler.Add)
			r.Post("/backfill-titles", cfg.VideoHandler.BackfillTitles)
			r.Delete("/{id}", cfg.VideoHandler.Delete)
		})
	})

	return r
}
