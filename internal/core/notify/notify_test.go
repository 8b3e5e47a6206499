package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/pipeforge/internal/core/config"
)

// =============================================================================
// TelegramEndpoint Tests
// =============================================================================

func TestTelegramEndpoint_ExtractsTokenAndChatID(t *testing.T) {
	endpoint, chatID, err := TelegramEndpoint("https://host/bot123:ABC/9876")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bot123:ABC/sendMessage", endpoint)
	assert.Equal(t, "9876", chatID)
}

func TestTelegramEndpoint_NoBotPrefix(t *testing.T) {
	endpoint, chatID, err := TelegramEndpoint("https://host/123:ABC/9876")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bot123:ABC/sendMessage", endpoint)
	assert.Equal(t, "9876", chatID)
}

func TestTelegramEndpoint_OneSegment(t *testing.T) {
	_, _, err := TelegramEndpoint("https://host/only-one")
	assert.ErrorIs(t, err, ErrMalformedTelegramWebhook)
}

func TestTelegramEndpoint_NoSegments(t *testing.T) {
	_, _, err := TelegramEndpoint("https://host/")
	assert.ErrorIs(t, err, ErrMalformedTelegramWebhook)
}

func TestTelegramEndpoint_TrailingSlash(t *testing.T) {
	endpoint, chatID, err := TelegramEndpoint("https://host/bot42:XYZ/100/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bot42:XYZ/sendMessage", endpoint)
	assert.Equal(t, "100", chatID)
}

// =============================================================================
// Generate Tests
// =============================================================================

func testNotifications() config.NotificationConfig {
	return config.NotificationConfig{
		Email: "ops@example.com",
		Platforms: []config.NotificationPlatform{
			{Channel: config.ChannelSlack, Webhook: "https://hooks.slack.com/services/T0/B0/XX"},
			{Channel: config.ChannelDiscord, Webhook: "https://discord.com/api/webhooks/1/abc"},
		},
	}
}

func TestGenerate_EmailAlwaysPresent(t *testing.T) {
	script, err := Generate(config.NotificationConfig{Email: "ops@example.com"})
	require.NoError(t, err)

	assert.Contains(t, script, "notify_email()")
	assert.Contains(t, script, `"ops@example.com"`)
	assert.Contains(t, script, "notify_all()")
}

func TestGenerate_OneRoutinePerConfiguredChannel(t *testing.T) {
	script, err := Generate(testNotifications())
	require.NoError(t, err)

	assert.Contains(t, script, "notify_slack()")
	assert.Contains(t, script, "notify_discord()")
	assert.NotContains(t, script, "notify_teams()")
	assert.NotContains(t, script, "notify_telegram()")
}

func TestGenerate_ChannelPayloadShapes(t *testing.T) {
	cfg := testNotifications()
	cfg.Platforms = append(cfg.Platforms,
		config.NotificationPlatform{Channel: config.ChannelTeams, Webhook: "https://example.webhook.office.com/x"},
		config.NotificationPlatform{Channel: config.ChannelTelegram, Webhook: "https://host/bot123:ABC/9876"},
	)
	script, err := Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, script, `\"attachments\"`, "slack payload is attachment-based")
	assert.Contains(t, script, `\"embeds\"`, "discord payload is embed-based")
	assert.Contains(t, script, "AdaptiveCard", "teams payload is adaptive-card-based")
	assert.Contains(t, script, "parse_mode=Markdown", "telegram payload is markdown text")
	assert.Contains(t, script, "https://api.telegram.org/bot123:ABC/sendMessage")
	assert.NotContains(t, script, "https://host/bot123:ABC/9876",
		"telegram must post to the bot API, not the raw webhook")
}

func TestGenerate_MalformedTelegramWebhookFailsFast(t *testing.T) {
	cfg := testNotifications()
	cfg.Platforms = []config.NotificationPlatform{
		{Channel: config.ChannelTelegram, Webhook: "https://host/one-segment"},
	}

	_, err := Generate(cfg)
	assert.ErrorIs(t, err, ErrMalformedTelegramWebhook)
}

func TestGenerate_FailureIsolationPerChannel(t *testing.T) {
	script, err := Generate(testNotifications())
	require.NoError(t, err)

	// every routine call in the wrapper is isolated in a subshell with
	// an explicit continue-on-failure
	assert.Contains(t, script, `( notify_slack "${STATUS}" ) ||`)
	assert.Contains(t, script, `( notify_discord "${STATUS}" ) ||`)
	assert.Contains(t, script, `( notify_email "${STATUS}" ) ||`)
}

func TestGenerate_WebhookOverrideMapWins(t *testing.T) {
	cfg := testNotifications()
	cfg.Webhooks = map[config.Channel]string{
		config.ChannelSlack: "https://hooks.slack.com/services/OVERRIDE",
	}
	script, err := Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, script, "OVERRIDE")
	assert.NotContains(t, script, "https://hooks.slack.com/services/T0/B0/XX")
}

func TestGenerate_EmptyWebhookSkipsChannel(t *testing.T) {
	cfg := config.NotificationConfig{
		Email:     "ops@example.com",
		Platforms: []config.NotificationPlatform{{Channel: config.ChannelSlack, Webhook: ""}},
	}
	script, err := Generate(cfg)
	require.NoError(t, err)

	assert.NotContains(t, script, "notify_slack")
}

func TestGenerate_Idempotent(t *testing.T) {
	first, err := Generate(testNotifications())
	require.NoError(t, err)
	second, err := Generate(testNotifications())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_EmailRunsLastInWrapper(t *testing.T) {
	script, err := Generate(testNotifications())
	require.NoError(t, err)

	wrapper := script[strings.Index(script, "notify_all()"):]
	slackAt := strings.Index(wrapper, "notify_slack")
	emailAt := strings.Index(wrapper, "notify_email")
	assert.Greater(t, emailAt, slackAt)
}
