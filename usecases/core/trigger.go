package core

import (
	"slices"
	"strings"

	"fangbot/config"
	"fangbot/models"
)

// IsSelfSent reports whether the message was sent by the bot's own account.
// Self-sent messages are filtered before any other processing so the bot's
// replies never loop back through the pipeline or into the log.
func IsSelfSent(msg *models.InboundMessage) bool {
	return msg.IMContactID != "" && msg.IMBotID == msg.IMContactID
}

// EvaluateTrigger decides whether an inbound message warrants an automated
// reply and extracts the clean query text.
//
// Group conversations respond only when the bot is explicitly mentioned. The
// canonical check is the structured mention list; the literal "@<handle>"
// substring check survives as the legacy strategy since it breaks when the
// bot's display name changes. Direct conversations respond only when the text
// starts with the trigger word.
func EvaluateTrigger(msg *models.InboundMessage, cfg config.TriggerConfig) models.TriggerDecision {
	text := msg.Payload.Text

	if msg.IsGroupMessage() {
		mentionToken := "@" + cfg.BotHandle

		mentioned := false
		switch cfg.MatchStrategy {
		case config.MatchStrategySubstring:
			mentioned = strings.Contains(text, mentionToken)
		default:
			mentioned = slices.Contains(msg.Payload.Mention, msg.IMBotID)
		}

		if !mentioned {
			return models.TriggerDecision{
				ShouldRespond:  false,
				Classification: models.ClassificationNotTriggered,
			}
		}

		return models.TriggerDecision{
			ShouldRespond:  true,
			Query:          strings.TrimSpace(strings.ReplaceAll(text, mentionToken, "")),
			Classification: models.ClassificationTriggered,
		}
	}

	if !strings.HasPrefix(text, cfg.Word) {
		return models.TriggerDecision{
			ShouldRespond:  false,
			Classification: models.ClassificationNotTriggered,
		}
	}

	// First occurrence only: the trigger word may legitimately reappear
	// inside the query itself.
	return models.TriggerDecision{
		ShouldRespond:  true,
		Query:          strings.TrimSpace(strings.Replace(text, cfg.Word, "", 1)),
		Classification: models.ClassificationTriggered,
	}
}
