// Package notify emits channel-specific notification routines invoked
// from the pipeline's lifecycle hooks. This is part of the Functional
// Core - all functions are pure with no I/O; the emitted shell posts
// the payloads at pipeline run time.
package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrMalformedTelegramWebhook is returned when the telegram webhook
	// URL does not carry a bot token and chat id as its final two path
	// segments. Emitting a guessed bot-API call would fail silently at
	// run time, so generation fails fast instead.
	ErrMalformedTelegramWebhook = errors.New("telegram webhook must end in /<botToken>/<chatId>")
)

// GenerateError wraps a notification configuration defect.
type GenerateError struct {
	Channel config.Channel
	Message string
	Err     error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("notify generator (%s): %s", e.Channel, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Generator
// =============================================================================

// Generate emits the notification routines: the mandatory email routine
// bound to the operator address, one routine per configured channel
// with a non-empty webhook, and a notify_all lifecycle wrapper that
// runs every routine under independent failure isolation.
//
// Each routine takes the pipeline outcome (SUCCESS/FAILURE/UNSTABLE) as
// its first argument. Payload timestamps are computed by the emitted
// script at run time; they are the documented exception to byte-level
// output equality.
func Generate(cfg config.NotificationConfig) (string, error) {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n# Pipeline notification routines\n\n")

	emitEmail(&b, cfg.Email)

	var routines []string
	for _, ch := range []config.Channel{config.ChannelSlack, config.ChannelDiscord, config.ChannelTeams, config.ChannelTelegram} {
		webhook := cfg.WebhookFor(ch)
		if webhook == "" {
			continue
		}
		switch ch {
		case config.ChannelSlack:
			emitSlack(&b, webhook)
		case config.ChannelDiscord:
			emitDiscord(&b, webhook)
		case config.ChannelTeams:
			emitTeams(&b, webhook)
		case config.ChannelTelegram:
			endpoint, chatID, err := TelegramEndpoint(webhook)
			if err != nil {
				return "", &GenerateError{Channel: ch, Message: err.Error(), Err: err}
			}
			emitTelegram(&b, endpoint, chatID)
		}
		routines = append(routines, "notify_"+string(ch))
	}

	emitWrapper(&b, routines)
	return b.String(), nil
}

// =============================================================================
// Lifecycle Wrapper
// =============================================================================

// emitWrapper writes notify_all: every channel call runs in its own
// subshell so one failing channel never blocks the others or the
// mandatory email.
func emitWrapper(b *strings.Builder, routines []string) {
	b.WriteString("notify_all() {\n  STATUS=\"$1\"\n")
	for _, routine := range routines {
		fmt.Fprintf(b, "  ( %s \"${STATUS}\" ) || echo \"%s failed, continuing\" >&2\n", routine, routine)
	}
	b.WriteString("  ( notify_email \"${STATUS}\" ) || echo \"notify_email failed, continuing\" >&2\n")
	b.WriteString("}\n")
}
