package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fangbot/config"
	"fangbot/models"
)

func defaultTriggerConfig() config.TriggerConfig {
	return config.TriggerConfig{
		Word:          "方工",
		BotHandle:     "有方方工",
		MatchStrategy: config.MatchStrategyMention,
	}
}

func TestIsSelfSent(t *testing.T) {
	t.Run("bot is the sender", func(t *testing.T) {
		assert.True(t, IsSelfSent(&models.InboundMessage{IMBotID: "bot-1", IMContactID: "bot-1"}))
	})

	t.Run("contact is the sender", func(t *testing.T) {
		assert.False(t, IsSelfSent(&models.InboundMessage{IMBotID: "bot-1", IMContactID: "contact-1"}))
	})

	t.Run("missing contact id is not self-sent", func(t *testing.T) {
		assert.False(t, IsSelfSent(&models.InboundMessage{IMBotID: "bot-1"}))
	})
}

func TestEvaluateTrigger_DirectMessages(t *testing.T) {
	cfg := defaultTriggerConfig()

	t.Run("trigger word prefix strips and trims", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:     "bot-1",
			IMContactID: "contact-1",
			Payload:     models.MessagePayload{Text: "方工 N58支持GPS吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.True(t, decision.ShouldRespond)
		assert.Equal(t, "N58支持GPS吗", decision.Query)
		assert.Equal(t, models.ClassificationTriggered, decision.Classification)
	})

	t.Run("only the first occurrence is stripped", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID: "bot-1",
			Payload: models.MessagePayload{Text: "方工 请问方工是谁"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.True(t, decision.ShouldRespond)
		assert.Equal(t, "请问方工是谁", decision.Query)
	})

	t.Run("no trigger word", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID: "bot-1",
			Payload: models.MessagePayload{Text: "N58支持GPS吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
		assert.Equal(t, models.ClassificationNotTriggered, decision.Classification)
		assert.Empty(t, decision.Query)
	})

	t.Run("trigger word mid-text does not trigger", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID: "bot-1",
			Payload: models.MessagePayload{Text: "请问方工在吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
	})
}

func TestEvaluateTrigger_GroupMessages_MentionStrategy(t *testing.T) {
	cfg := defaultTriggerConfig()

	t.Run("bot in mention list triggers", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:     "bot-1",
			IMContactID: "contact-1",
			IMRoomID:    "room-1",
			Payload: models.MessagePayload{
				Text:    "@有方方工 N58支持GPS吗",
				Mention: []string{"bot-1"},
			},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.True(t, decision.ShouldRespond)
		assert.Equal(t, "N58支持GPS吗", decision.Query)
		assert.Equal(t, models.ClassificationTriggered, decision.Classification)
	})

	t.Run("mention of someone else does not trigger", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:  "bot-1",
			IMRoomID: "room-1",
			Payload: models.MessagePayload{
				Text:    "@张三 看一下这个",
				Mention: []string{"contact-2"},
			},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
		assert.Equal(t, models.ClassificationNotTriggered, decision.Classification)
	})

	t.Run("handle in text without structured mention does not trigger", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:  "bot-1",
			IMRoomID: "room-1",
			Payload:  models.MessagePayload{Text: "@有方方工 N58支持GPS吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
	})

	t.Run("trigger word without mention does not trigger in group", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:  "bot-1",
			IMRoomID: "room-1",
			Payload:  models.MessagePayload{Text: "方工 N58支持GPS吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
	})
}

func TestEvaluateTrigger_GroupMessages_SubstringStrategy(t *testing.T) {
	cfg := defaultTriggerConfig()
	cfg.MatchStrategy = config.MatchStrategySubstring

	t.Run("literal handle in text triggers", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:  "bot-1",
			IMRoomID: "room-1",
			Payload:  models.MessagePayload{Text: "@有方方工 N58支持GPS吗"},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.True(t, decision.ShouldRespond)
		assert.Equal(t, "N58支持GPS吗", decision.Query)
	})

	t.Run("structured mention alone does not trigger", func(t *testing.T) {
		msg := &models.InboundMessage{
			IMBotID:  "bot-1",
			IMRoomID: "room-1",
			Payload: models.MessagePayload{
				Text:    "N58支持GPS吗",
				Mention: []string{"bot-1"},
			},
		}

		decision := EvaluateTrigger(msg, cfg)

		assert.False(t, decision.ShouldRespond)
	})
}
