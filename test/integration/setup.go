package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/baetodi/club/internal/adapters/handler/http"
	"github.com/baetodi/club/internal/adapters/oauth/google"
	repo "github.com/baetodi/club/internal/adapters/repository/postgres"
	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/baetodi/club/internal/core/services"
)

const testJWTSecret = "test-secret"

// stubVideoProvider keeps integration tests off the network: titles come
// from a fixed map instead of the oEmbed endpoint.
type stubVideoProvider struct {
	titles map[string]string
}

func (p *stubVideoProvider) ParseVideoID(url string) (string, error) {
	const prefix = "https://youtu.be/"
	if !strings.HasPrefix(url, prefix) || len(url) != len(prefix)+11 {
		return "", domain.ErrInvalidVideoURL
	}
	return url[len(prefix):], nil
}

func (p *stubVideoProvider) FetchTitle(ctx context.Context, url string) (string, error) {
	title, ok := p.titles[url]
	if !ok {
		return "", fmt.Errorf("no title for %s", url)
	}
	return title, nil
}

type TestApp struct {
	DB            *sql.DB
	Server        *httptest.Server
	Client        *stdhttp.Client
	VideoTitles   map[string]string
	DBContainer   testcontainers.Container
	MemberService ports.MemberService
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", testJWTSecret)
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbContainer.Terminate(context.Background()) })

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, applyMigrations(db))

	memberRepo := repo.NewMemberRepository(db)
	authRepo := repo.NewAuthRepository(db)
	scheduleRepo := repo.NewScheduleRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	attendanceRepo := repo.NewAttendanceRepository(db)
	noticeRepo := repo.NewNoticeRepository(db)
	matchRepo := repo.NewMatchRepository(db)
	videoRepo := repo.NewVideoRepository(db)

	videoTitles := map[string]string{}

	authService := services.NewAuthService(memberRepo, authRepo, google.NewVerifier())
	memberService := services.NewMemberService(memberRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, voteRepo, attendanceRepo, memberRepo)
	noticeService := services.NewNoticeService(noticeRepo)
	matchService := services.NewMatchService(matchRepo, memberRepo)
	videoService := services.NewVideoService(videoRepo, &stubVideoProvider{titles: videoTitles})

	router := handler.NewHandler(handler.RouterConfig{
		JWTSecret:       testJWTSecret,
		AuthHandler:     handler.NewAuthHandler(authService, "/", "", stdhttp.SameSiteLaxMode),
		MemberHandler:   handler.NewMemberHandler(memberService),
		ScheduleHandler: handler.NewScheduleHandler(scheduleService, memberService),
		NoticeHandler:   handler.NewNoticeHandler(noticeService, memberService),
		MatchHandler:    handler.NewMatchHandler(matchService, memberService),
		VideoHandler:    handler.NewVideoHandler(videoService, memberService),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{
		DB:            db,
		Server:        server,
		Client:        server.Client(),
		VideoTitles:   videoTitles,
		DBContainer:   dbContainer,
		MemberService: memberService,
	}
}

// createMemberAndToken inserts a member with the given club position and
// mints the access token the auth middleware expects.
func (app *TestApp) createMemberAndToken(t *testing.T, position string) (uuid.UUID, string) {
	t.Helper()

	memberID := uuid.New()
	email := fmt.Sprintf("member-%s@example.com", memberID)
	name := fmt.Sprintf("Member %s", memberID.String()[:6])
	_, err := app.DB.Exec(
		"INSERT INTO members (id, email, name, position) VALUES ($1, $2, $3, $4)",
		memberID, email, name, position,
	)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   memberID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return memberID, signedToken
}

func (app *TestApp) doJSON(t *testing.T, method, path, token string, body any) *stdhttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := stdhttp.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&stdhttp.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *stdhttp.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
