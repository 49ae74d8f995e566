package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"foxholewar/tracker"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const DEFAULT_USERNAME = "Foxhole War"

// Sends tracker events to a Discord channel through a webhook. No bot token is required.
type Webhook struct {
	session  *discordgo.Session
	id       string
	token    string
	Username string
}

// Splits a webhook URL of the form https://discord.com/api/webhooks/{id}/{token} into its id and token.
func ParseWebhookURL(raw string) (id string, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) {
			return parts[i+1], parts[i+2], nil
		}
	}

	return "", "", fmt.Errorf("invalid webhook url %q: expected .../webhooks/{id}/{token}", raw)
}

func NewWebhook(rawURL string) (*Webhook, error) {
	id, token, err := ParseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, err
	}

	return &Webhook{session: session, id: id, token: token, Username: DEFAULT_USERNAME}, nil
}

func (w *Webhook) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := w.session.WebhookExecute(w.id, w.token, false, &discordgo.WebhookParams{
		Username: w.Username,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))

	return err
}

func (w *Webhook) NotifyWar(ctx context.Context, event tracker.WarEvent) error {
	return w.send(ctx, WarEventEmbed(event, time.Now()))
}

func (w *Webhook) NotifyMapChange(ctx context.Context, change tracker.MapChange) error {
	return w.send(ctx, MapChangeEmbed(change))
}

// Writes events to the log instead of sending them anywhere. Used when no webhook is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyWar(ctx context.Context, event tracker.WarEvent) error {
	log.WithFields(log.Fields{"event": event.Kind, "war": event.War.WarNumber}).Info("war event")
	return nil
}

func (LogNotifier) NotifyMapChange(ctx context.Context, change tracker.MapChange) error {
	entry := log.WithFields(log.Fields{"map": change.MapName, "version": change.NewVersion})
	for _, c := range change.Captured {
		entry.Info(c.String())
	}

	return nil
}
