package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/monocle-dev/planboard/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB

	Username = "Planboard"
)

// WebhookAnnouncer posts release announcements to the Discord and Slack
// webhooks configured on a project.
type WebhookAnnouncer struct {
	client *http.Client
	now    func() time.Time
}

func NewWebhookAnnouncer(client *http.Client) *WebhookAnnouncer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookAnnouncer{client: client, now: time.Now}
}

// AnnounceRelease is a no-op for projects without webhooks.
func (a *WebhookAnnouncer) AnnounceRelease(ctx context.Context, project models.Project, release models.Release) error {
	if project.DiscordWebhook != "" {
		if err := a.post(ctx, project.DiscordWebhook, a.discordRelease(project, release)); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if project.SlackWebhook != "" {
		if err := a.post(ctx, project.SlackWebhook, a.slackRelease(project, release)); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func releaseIssueTitles(release models.Release) string {
	if len(release.Issues) == 0 {
		return "None"
	}

	titles := make([]string, 0, len(release.Issues))
	for _, issue := range release.Issues {
		titles = append(titles, "• "+issue.Title)
	}
	return strings.Join(titles, "\n")
}

func releaseNotes(release models.Release) string {
	if strings.TrimSpace(release.Notes) == "" {
		return "No release notes."
	}
	return release.Notes
}

func (a *WebhookAnnouncer) discordRelease(project models.Project, release models.Release) DiscordWebhookRequest {
	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       fmt.Sprintf("🚀 **%s %s released**", project.Name, release.Version),
				Description: releaseNotes(release),
				Color:       ColorBlue,
				Fields: []DiscordWebhookField{
					{Name: "🏷️ Version", Value: release.Version, Inline: true},
					{Name: "📦 Issues", Value: fmt.Sprintf("%d", len(release.Issues)), Inline: true},
					{Name: "📋 Included", Value: releaseIssueTitles(release), Inline: false},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Project: %s | Planboard", project.Name),
				},
				Timestamp: a.now().Format(time.RFC3339),
			},
		},
	}
}

func (a *WebhookAnnouncer) slackRelease(project models.Project, release models.Release) SlackWebhookRequest {
	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":rocket:",
		Text:      fmt.Sprintf(":rocket: *%s %s released*", project.Name, release.Version),
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: "Release " + release.Version,
				Text:  releaseNotes(release),
				Fields: []SlackField{
					{Title: "Version", Value: release.Version, Short: true},
					{Title: "Issues", Value: fmt.Sprintf("%d", len(release.Issues)), Short: true},
					{Title: "Included", Value: releaseIssueTitles(release), Short: false},
				},
				Footer:    fmt.Sprintf("Project: %s", project.Name),
				Timestamp: a.now().Unix(),
			},
		},
	}
}

func (a *WebhookAnnouncer) post(ctx context.Context, webhookURL string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
