package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fangbot/config"
	"fangbot/models"
)

// ConversationalBackend generates a natural-language answer for a query
type ConversationalBackend interface {
	GetAnswer(ctx context.Context, query string) (string, error)
}

// LookupResponder is the secondary answer generator backed by the product
// reference table
type LookupResponder interface {
	GetAnswer(ctx context.Context, query string) (string, error)
}

// Dispatcher delivers a composed payload through the messaging hub
type Dispatcher interface {
	SendMessage(ctx context.Context, msg *models.InboundMessage, payload models.OutboundPayload) (json.RawMessage, error)
}

// MessageRecorder persists one log record per accepted inbound message
type MessageRecorder interface {
	RecordExchange(
		ctx context.Context,
		contactName, queryText, botResponse, roomTopic string,
		classification int,
	) (*models.MessageLog, error)
}

// DedupChecker reports whether a message ID was already processed recently
type DedupChecker interface {
	CheckAndMark(messageID string) bool
}

// Outcome statuses surfaced to the webhook caller
const (
	StatusSuccess  = "success"
	StatusFiltered = "filtered"
	StatusRecorded = "recorded"
)

// HubMessageResult is the terminal outcome of processing one inbound message
type HubMessageResult struct {
	Status       string
	Reason       string
	SendResponse json.RawMessage
}

// CoreUseCase runs the full pipeline for one inbound hub event: trigger
// evaluation, backend call, fallback policy, reply composition, dispatch and
// log insertion — strictly sequentially per request. Concurrent requests are
// independent; the dedup set is the only shared mutable state.
type CoreUseCase struct {
	backend         ConversationalBackend
	lookupResponder LookupResponder // nil when the lookup integration is not configured
	dispatcher      Dispatcher
	recorder        MessageRecorder
	dedup           DedupChecker
	triggerConfig   config.TriggerConfig
}

func NewCoreUseCase(
	backend ConversationalBackend,
	lookupResponder LookupResponder,
	dispatcher Dispatcher,
	recorder MessageRecorder,
	dedup DedupChecker,
	triggerConfig config.TriggerConfig,
) *CoreUseCase {
	return &CoreUseCase{
		backend:         backend,
		lookupResponder: lookupResponder,
		dispatcher:      dispatcher,
		recorder:        recorder,
		dedup:           dedup,
		triggerConfig:   triggerConfig,
	}
}

// ProcessHubMessage handles a single inbound message end to end.
//
// Filtered messages (self-sent or duplicate) short-circuit before any side
// effect, including logging: the bot's own replies would otherwise double-log
// every exchange, and duplicates were logged on first delivery. Every other
// message produces exactly one log record; a reply is dispatched if and only
// if the trigger decision is positive and the backend returned a non-empty
// answer.
func (u *CoreUseCase) ProcessHubMessage(ctx context.Context, msg *models.InboundMessage) (*HubMessageResult, error) {
	if IsSelfSent(msg) {
		log.Printf("⏭️ Filtered out self-sent message %s to avoid reply loop", msg.MessageID)
		return &HubMessageResult{Status: StatusFiltered, Reason: "self-sent message"}, nil
	}

	if u.dedup != nil && u.dedup.CheckAndMark(msg.MessageID) {
		log.Printf("⏭️ Filtered out duplicate message with ID: %s", msg.MessageID)
		return &HubMessageResult{Status: StatusFiltered, Reason: "duplicate message"}, nil
	}

	decision := EvaluateTrigger(msg, u.triggerConfig)

	roomTopic := ""
	if msg.IsGroupMessage() {
		roomTopic = msg.RoomTopic
	}

	if !decision.ShouldRespond {
		// The log keeps the raw inbound text so the store stays a faithful
		// transcript of what the contact actually sent.
		if _, err := u.recorder.RecordExchange(
			ctx, msg.ContactName, msg.Payload.Text, "", roomTopic, decision.Classification,
		); err != nil {
			return nil, err
		}

		reason := "no trigger word"
		if msg.IsGroupMessage() {
			reason = "no mention of bot"
		}
		return &HubMessageResult{Status: StatusRecorded, Reason: reason}, nil
	}

	log.Printf("🎯 Message %s triggered a reply, query: %s", msg.MessageID, decision.Query)

	answer, err := u.backend.GetAnswer(ctx, decision.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to get backend answer: %w", err)
	}

	if AnswerUnusable(answer) && u.lookupResponder != nil {
		log.Printf("🔍 Backend could not answer, consulting lookup responder")
		answer, err = u.lookupResponder.GetAnswer(ctx, decision.Query)
		if err != nil {
			return nil, fmt.Errorf("failed to get lookup answer: %w", err)
		}
	}

	// Both answer generators enforce this on their side; the check here keeps
	// the no-empty-reply rule independent of the collaborator implementations.
	if answer == "" {
		return nil, fmt.Errorf("no usable answer for message %s", msg.MessageID)
	}

	payload := ComposeReply(msg, answer, u.triggerConfig.QuoteReplies)

	sendResponse, err := u.dispatcher.SendMessage(ctx, msg, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch reply: %w", err)
	}

	// The reply is already out; a failed insert here is surfaced to the
	// caller with no compensating action.
	if _, err := u.recorder.RecordExchange(
		ctx, msg.ContactName, msg.Payload.Text, answer, roomTopic, decision.Classification,
	); err != nil {
		return nil, err
	}

	return &HubMessageResult{Status: StatusSuccess, SendResponse: sendResponse}, nil
}
