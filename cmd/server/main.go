package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/baetodi/club/internal/adapters/handler/http"
	"github.com/baetodi/club/internal/adapters/oauth/google"
	"github.com/baetodi/club/internal/adapters/repository/postgres"
	"github.com/baetodi/club/internal/adapters/video/youtube"
	"github.com/baetodi/club/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	memberRepo := postgres.NewMemberRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	noticeRepo := postgres.NewNoticeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	videoRepo := postgres.NewVideoRepository(db)

	authService := services.NewAuthService(memberRepo, authRepo, google.NewVerifier())
	memberService := services.NewMemberService(memberRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, voteRepo, attendanceRepo, memberRepo)
	noticeService := services.NewNoticeService(noticeRepo)
	matchService := services.NewMatchService(matchRepo, memberRepo)
	videoService := services.NewVideoService(videoRepo, youtube.NewProvider())

	handler := http.NewHandler(http.RouterConfig{
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AuthHandler:     http.NewAuthHandler(authService, os.Getenv("AUTH_REDIRECT_URL"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode),
		MemberHandler:   http.NewMemberHandler(memberService),
		ScheduleHandler: http.NewScheduleHandler(scheduleService, memberService),
		NoticeHandler:   http.NewNoticeHandler(noticeService, memberService),
		MatchHandler:    http.NewMatchHandler(matchService, memberService),
		VideoHandler:    http.NewVideoHandler(videoService, memberService),
	})

	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	dbName := os.Getenv("POSTGRES_DB")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
