package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baetodi/club/internal/core/domain"
)

func TestNoticeLifecycle(t *testing.T) {
	app := setupTestApp(t)

	_, authorToken := app.createMemberAndToken(t, "member")
	_, otherToken := app.createMemberAndToken(t, "member")

	resp := app.doJSON(t, http.MethodPost, "/api/notices", authorToken, map[string]string{
		"title":   "Hall booking",
		"content": "We play at **hall 3** this week.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	notice := decodeBody[*domain.Notice](t, resp)
	assert.Contains(t, notice.HTML, "<strong>hall 3</strong>")

	// Only the author can edit.
	resp = app.doJSON(t, http.MethodPut, "/api/notices/"+notice.ID.String(), otherToken, map[string]string{
		"title":   "Hijacked",
		"content": "nope",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.doJSON(t, http.MethodPut, "/api/notices/"+notice.ID.String(), authorToken, map[string]string{
		"title":   "Hall booking updated",
		"content": "Hall 5 after all.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[*domain.Notice](t, resp)
	assert.Equal(t, "Hall booking updated", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	resp = app.doJSON(t, http.MethodGet, "/api/notices", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notices := decodeBody[[]*domain.Notice](t, resp)
	require.Len(t, notices, 1)

	resp = app.doJSON(t, http.MethodDelete, "/api/notices/"+notice.ID.String(), authorToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestMatchRecordingAndMemberRecord(t *testing.T) {
	app := setupTestApp(t)

	_, token := app.createMemberAndToken(t, "member")
	playerA, _ := app.createMemberAndToken(t, "member")
	playerB, _ := app.createMemberAndToken(t, "member")

	resp := app.doJSON(t, http.MethodPost, "/api/matches", token, map[string]any{
		"date":        "2026-05-10",
		"team_a_name": "Smashers",
		"team_b_name": "Netters",
		"team_a":      []uuid.UUID{playerA},
		"team_b":      []uuid.UUID{playerB},
		"score_a":     21,
		"score_b":     17,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	match := decodeBody[*domain.Match](t, resp)
	require.Len(t, match.Participants, 2)

	resp = app.doJSON(t, http.MethodGet, "/api/matches", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches := decodeBody[[]*domain.Match](t, resp)
	require.Len(t, matches, 1)
	for _, p := range matches[0].Participants {
		assert.NotEmpty(t, p.DisplayName, "participant names come resolved")
	}

	resp = app.doJSON(t, http.MethodGet,
		fmt.Sprintf("/api/members/%s/record", playerA), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := decodeBody[*domain.MemberRecord](t, resp)
	assert.Equal(t, 1, record.Games)
	assert.Equal(t, 1, record.Wins)
	assert.Zero(t, record.Losses)
}

func TestVideoArchiveAndBackfill(t *testing.T) {
	app := setupTestApp(t)

	_, token := app.createMemberAndToken(t, "member")

	knownURL := "https://youtu.be/dQw4w9WgXcQ"
	unknownURL := "https://youtu.be/aaaaaaaaaaa"
	app.VideoTitles[knownURL] = "Finals highlights"

	resp := app.doJSON(t, http.MethodPost, "/api/videos", token, map[string]string{"url": knownURL})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	video := decodeBody[*domain.Video](t, resp)
	assert.Equal(t, "dQw4w9WgXcQ", video.YouTubeID)
	assert.Equal(t, "Finals highlights", video.Title)

	// Title lookup fails for this one; the insert still goes through.
	resp = app.doJSON(t, http.MethodPost, "/api/videos", token, map[string]string{"url": unknownURL})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	untitled := decodeBody[*domain.Video](t, resp)
	assert.Empty(t, untitled.Title)

	resp = app.doJSON(t, http.MethodPost, "/api/videos", token, map[string]string{"url": "https://vimeo.com/1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Backfill picks the title up once the endpoint knows it.
	app.VideoTitles[unknownURL] = "Drop shot drills"
	resp = app.doJSON(t, http.MethodPost, "/api/videos/backfill-titles", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decodeBody[map[string]int](t, resp)["filled"])

	var title string
	require.NoError(t, app.DB.QueryRow(
		"SELECT title FROM videos WHERE id = $1", untitled.ID).Scan(&title))
	assert.Equal(t, "Drop shot drills", title)
}

func TestMemberOnboardingProfile(t *testing.T) {
	app := setupTestApp(t)

	memberID, token := app.createMemberAndToken(t, "")

	resp := app.doJSON(t, http.MethodPatch, "/api/members/me", token, map[string]string{
		"nickname": "Smash",
		"position": "treasurer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	member := decodeBody[*domain.Member](t, resp)
	assert.Equal(t, memberID, member.ID)
	assert.Equal(t, "Smash", member.Nickname)
	assert.Equal(t, "treasurer", member.Position)

	resp = app.doJSON(t, http.MethodGet, "/api/members/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[*domain.Member](t, resp)
	assert.Equal(t, "Smash", fetched.Nickname)
}
