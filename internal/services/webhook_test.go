package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monocle-dev/planboard/internal/models"
)

func TestAnnounceReleaseWithoutWebhooksIsNoop(t *testing.T) {
	announcer := NewWebhookAnnouncer(nil)

	err := announcer.AnnounceRelease(context.Background(), models.Project{Name: "Apollo"}, models.Release{Version: "1.0.0"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAnnounceReleaseReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	announcer := NewWebhookAnnouncer(server.Client())
	project := models.Project{Name: "Apollo", DiscordWebhook: server.URL}

	err := announcer.AnnounceRelease(context.Background(), project, models.Release{Version: "1.0.0"})
	if err == nil || !strings.Contains(err.Error(), "discord") {
		t.Fatalf("expected discord error, got %v", err)
	}
}

func TestReleaseIssueTitles(t *testing.T) {
	if got := releaseIssueTitles(models.Release{}); got != "None" {
		t.Errorf("expected None, got %q", got)
	}

	release := models.Release{Issues: []models.Issue{{Title: "A"}, {Title: "B"}}}
	if got := releaseIssueTitles(release); got != "• A\n• B" {
		t.Errorf("unexpected titles %q", got)
	}
}
