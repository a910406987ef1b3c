package core

import (
	"fangbot/models"
)

// ComposeReply builds the outbound payload for a reply. Group replies address
// the original sender with an "@" marker and carry their identity in the
// mention list (the contact, never the room). Direct replies are the answer
// text alone. When quoteReplies is on, the inbound message ID is echoed as
// the quoted message.
func ComposeReply(msg *models.InboundMessage, answer string, quoteReplies bool) models.OutboundPayload {
	payload := models.OutboundPayload{Text: answer}

	if msg.IsGroupMessage() {
		payload.Text = "@" + msg.ContactName + "\n" + answer
		if msg.IMContactID != "" {
			payload.Mention = []string{msg.IMContactID}
		}
	}

	if quoteReplies {
		payload.QuoteMessageID = msg.MessageID
	}

	return payload
}
