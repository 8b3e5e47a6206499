package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// =============================================================================
// Telegram Webhook Extraction
// =============================================================================

// TelegramEndpoint extracts the bot token and chat id encoded as the
// webhook's final two path segments and reconstructs the bot-API call
// URL. A "bot" prefix on the token segment is accepted and stripped.
//
// Example:
//
//	TelegramEndpoint("https://host/bot123:ABC/9876")
//	// returns "https://api.telegram.org/bot123:ABC/sendMessage", "9876"
func TelegramEndpoint(webhook string) (endpoint, chatID string, err error) {
	parsed, err := url.Parse(webhook)
	if err != nil {
		return "", "", fmt.Errorf("invalid telegram webhook: %w", err)
	}

	segments := splitPath(parsed.Path)
	if len(segments) < 2 {
		return "", "", ErrMalformedTelegramWebhook
	}

	token := strings.TrimPrefix(segments[len(segments)-2], "bot")
	chatID = segments[len(segments)-1]
	if token == "" || chatID == "" {
		return "", "", ErrMalformedTelegramWebhook
	}

	return fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token), chatID, nil
}

// splitPath returns the non-empty path segments.
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
