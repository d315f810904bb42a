// Package youtube recognizes YouTube share URLs and resolves video titles
// through the public oEmbed endpoint. No API key is required.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baetodi/club/internal/core/domain"
)

const oembedEndpoint = "https://www.youtube.com/oembed"

type Provider struct {
	client *http.Client
}

func NewProvider() *Provider {
	return &Provider{client: &http.Client{Timeout: 10 * time.Second}}
}

// ParseVideoID extracts the 11-character video ID from the URL forms YouTube
// hands out: watch?v=, youtu.be short links, /embed/ and /shorts/ paths.
func (p *Provider) ParseVideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", domain.ErrInvalidVideoURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", domain.ErrInvalidVideoURL
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); isVideoID(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); isVideoID(id) {
				return id, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if isVideoID(id) {
					return id, nil
				}
			}
		}
	}
	return "", domain.ErrInvalidVideoURL
}

// FetchTitle asks the oEmbed endpoint for the video title.
func (p *Provider) FetchTitle(ctx context.Context, rawURL string) (string, error) {
	id, err := p.ParseVideoID(rawURL)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("url", "https://www.youtube.com/watch?v="+id)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedEndpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build oembed request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode oembed response: %w", err)
	}
	return payload.Title, nil
}

// ThumbnailURL returns the static thumbnail for a parsed video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

func isVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
