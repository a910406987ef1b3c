package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fangbot/models"
)

func TestComposeReply_GroupMessages(t *testing.T) {
	msg := &models.InboundMessage{
		IMBotID:     "bot-1",
		IMContactID: "contact-1",
		ContactName: "张工",
		IMRoomID:    "room-1",
		RoomTopic:   "模组技术支持群",
		MessageID:   "msg-1",
	}

	t.Run("mentions the sender above the answer", func(t *testing.T) {
		payload := ComposeReply(msg, "N58 支持 GPS。", false)

		assert.Equal(t, "@张工\nN58 支持 GPS。", payload.Text)
		assert.Equal(t, []string{"contact-1"}, payload.Mention)
		assert.Empty(t, payload.QuoteMessageID)
	})

	t.Run("quote option echoes the inbound message id", func(t *testing.T) {
		payload := ComposeReply(msg, "N58 支持 GPS。", true)

		assert.Equal(t, "msg-1", payload.QuoteMessageID)
	})

	t.Run("missing contact id leaves mention list empty", func(t *testing.T) {
		anonymous := &models.InboundMessage{
			IMBotID:     "bot-1",
			ContactName: "张工",
			IMRoomID:    "room-1",
		}

		payload := ComposeReply(anonymous, "回答", false)

		assert.Nil(t, payload.Mention)
	})
}

func TestComposeReply_DirectMessages(t *testing.T) {
	msg := &models.InboundMessage{
		IMBotID:     "bot-1",
		IMContactID: "contact-1",
		ContactName: "张工",
		MessageID:   "msg-2",
	}

	t.Run("answer passes through without mention", func(t *testing.T) {
		payload := ComposeReply(msg, "N58 支持 GPS。", false)

		assert.Equal(t, "N58 支持 GPS。", payload.Text)
		assert.Nil(t, payload.Mention)
		assert.Empty(t, payload.QuoteMessageID)
	})

	t.Run("quote option echoes the inbound message id", func(t *testing.T) {
		payload := ComposeReply(msg, "N58 支持 GPS。", true)

		assert.Equal(t, "msg-2", payload.QuoteMessageID)
	})
}
