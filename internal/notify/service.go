package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"owlwatch/internal/config"
	"owlwatch/internal/tracker"
)

const userAgent = "owlwatch/0.1"

// maxShowsInMessage bounds how many show names a notification body lists.
const maxShowsInMessage = 3

// Service is the notification surface exposed to the check command.
type Service interface {
	NotifyNewEpisodes(ctx context.Context, updates []tracker.ShowUpdate) error
	NotifyNoUpdates(ctx context.Context, checked int) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic is
// configured, and a noop implementation otherwise.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyNewEpisodes(ctx context.Context, updates []tracker.ShowUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	plural := "s"
	if len(updates) == 1 {
		plural = ""
	}

	// One line per distinct show, first-seen order, capped.
	var names []string
	seen := make(map[string]struct{})
	for _, update := range updates {
		if _, ok := seen[update.ShowName]; ok {
			continue
		}
		seen[update.ShowName] = struct{}{}
		names = append(names, update.ShowName)
	}
	message := strings.Join(names[:min(len(names), maxShowsInMessage)], "\n")
	if extra := len(names) - maxShowsInMessage; extra > 0 {
		message = fmt.Sprintf("%s\n... and %d more", message, extra)
	}

	data := payload{
		title:    fmt.Sprintf("Owlwatch - %d new episode%s", len(updates), plural),
		message:  message,
		tags:     []string{"owlwatch", "episodes", "new"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyNoUpdates(ctx context.Context, checked int) error {
	data := payload{
		title:   "Owlwatch",
		message: fmt.Sprintf("No new episodes across %d tracked shows", checked),
		tags:    []string{"owlwatch", "check"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Owlwatch - Error",
		message:  builder.String(),
		tags:     []string{"owlwatch", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Owlwatch - Test",
		message:  "Notification system test",
		tags:     []string{"owlwatch", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyNewEpisodes(context.Context, []tracker.ShowUpdate) error { return nil }
func (noopService) NotifyNoUpdates(context.Context, int) error                    { return nil }
func (noopService) NotifyError(context.Context, error, string) error              { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
