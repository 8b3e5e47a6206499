package notify

import (
	"fmt"
	"strings"
)

// =============================================================================
// Channel Routines
// =============================================================================

// Each routine reads JOB_NAME, BUILD_NUMBER and BUILD_URL from the
// pipeline environment and takes the outcome as "$1". The payload
// timestamp is computed at run time by the script.

func emitEmail(b *strings.Builder, address string) {
	fmt.Fprintf(b, `notify_email() {
  STATUS="$1"
  SUBJECT="[${STATUS}] ${JOB_NAME} #${BUILD_NUMBER}"
  BODY="Pipeline ${JOB_NAME} build ${BUILD_NUMBER} finished with status ${STATUS}.
Details: ${BUILD_URL}
Time: $(date -u +%%Y-%%m-%%dT%%H:%%M:%%SZ)"
  printf '%%s\n' "${BODY}" | mail -s "${SUBJECT}" %q
}

`, address)
}

// Slack uses an attachment-based payload; color tracks the outcome.
func emitSlack(b *strings.Builder, webhook string) {
	fmt.Fprintf(b, `notify_slack() {
  STATUS="$1"
  case "${STATUS}" in
    SUCCESS) COLOR="good" ;;
    UNSTABLE) COLOR="warning" ;;
    *) COLOR="danger" ;;
  esac
  curl -fsS -X POST -H 'Content-Type: application/json' --data "{
    \"attachments\": [{
      \"color\": \"${COLOR}\",
      \"title\": \"${JOB_NAME} #${BUILD_NUMBER}: ${STATUS}\",
      \"title_link\": \"${BUILD_URL}\",
      \"ts\": $(date +%%s)
    }]
  }" %q
}

`, webhook)
}

// Discord uses an embed-based payload; color is a decimal RGB value.
func emitDiscord(b *strings.Builder, webhook string) {
	fmt.Fprintf(b, `notify_discord() {
  STATUS="$1"
  case "${STATUS}" in
    SUCCESS) COLOR=3066993 ;;
    UNSTABLE) COLOR=16776960 ;;
    *) COLOR=15158332 ;;
  esac
  curl -fsS -X POST -H 'Content-Type: application/json' --data "{
    \"embeds\": [{
      \"title\": \"${JOB_NAME} #${BUILD_NUMBER}: ${STATUS}\",
      \"url\": \"${BUILD_URL}\",
      \"color\": ${COLOR},
      \"timestamp\": \"$(date -u +%%Y-%%m-%%dT%%H:%%M:%%SZ)\"
    }]
  }" %q
}

`, webhook)
}

// Teams uses an adaptive-card payload wrapped in a message envelope.
func emitTeams(b *strings.Builder, webhook string) {
	fmt.Fprintf(b, `notify_teams() {
  STATUS="$1"
  curl -fsS -X POST -H 'Content-Type: application/json' --data "{
    \"type\": \"message\",
    \"attachments\": [{
      \"contentType\": \"application/vnd.microsoft.card.adaptive\",
      \"content\": {
        \"type\": \"AdaptiveCard\",
        \"version\": \"1.4\",
        \"body\": [
          {\"type\": \"TextBlock\", \"size\": \"Medium\", \"weight\": \"Bolder\", \"text\": \"${JOB_NAME} #${BUILD_NUMBER}: ${STATUS}\"},
          {\"type\": \"TextBlock\", \"text\": \"${BUILD_URL}\", \"wrap\": true}
        ]
      }
    }]
  }" %q
}

`, webhook)
}

// Telegram posts Markdown text to the reconstructed bot-API endpoint
// rather than the raw webhook.
func emitTelegram(b *strings.Builder, endpoint, chatID string) {
	fmt.Fprintf(b, `notify_telegram() {
  STATUS="$1"
  TEXT="*${JOB_NAME}* #${BUILD_NUMBER}: ${STATUS}
[Build log](${BUILD_URL})"
  curl -fsS -X POST %q \
    -d chat_id=%q \
    -d parse_mode=Markdown \
    --data-urlencode "text=${TEXT}"
}

`, endpoint, chatID)
}
