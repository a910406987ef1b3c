package models

// Classification codes recorded with every message log entry
const (
	ClassificationTriggered    = 0
	ClassificationNotTriggered = 1
)

// MessagePayload is the message body shared by inbound events and outbound
// replies. Mention carries the platform identities addressed by the message.
type MessagePayload struct {
	Text           string   `json:"text"`
	QuoteMessageID string   `json:"quoteMessageId,omitempty"`
	Mention        []string `json:"mention,omitempty"`
}

// InboundMessage is a single hub webhook event. Immutable once decoded;
// owned by the request scope. MessageType is a pointer so an absent field is
// distinguishable from a literal zero.
type InboundMessage struct {
	IMBotID     string         `json:"imBotId"`
	IMContactID string         `json:"imContactId,omitempty"`
	ContactName string         `json:"contactName,omitempty"`
	IMRoomID    string         `json:"imRoomId,omitempty"`
	RoomTopic   string         `json:"roomTopic,omitempty"`
	MessageType *int           `json:"messageType"`
	Payload     MessagePayload `json:"payload"`
	Token       string         `json:"token"`
	MessageID   string         `json:"messageId"`
}

// IsGroupMessage returns true if the message came from a group conversation
func (m *InboundMessage) IsGroupMessage() bool {
	return m.IMRoomID != ""
}

// TriggerDecision is the outcome of evaluating an inbound message against the
// trigger rules. Query holds the text passed to the conversational backend,
// with the trigger token stripped.
type TriggerDecision struct {
	ShouldRespond  bool
	Query          string
	Classification int
}

// OutboundPayload is the composed reply body handed to the dispatch API.
// Constructed fresh per reply and never mutated afterward.
type OutboundPayload struct {
	Text           string   `json:"text"`
	QuoteMessageID string   `json:"quoteMessageId,omitempty"`
	Mention        []string `json:"mention,omitempty"`
}
