package coze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fangbot/core"
)

func TestCozeClient_GetAnswer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/open_api/v2/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "conv-1", req.ConversationID)
		assert.Equal(t, "bot-1", req.BotID)
		assert.Equal(t, "user-tag", req.User)
		assert.Equal(t, "N58支持GPS吗", req.Query)
		assert.False(t, req.Stream)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			Messages: []chatMessage{
				{Type: "verbose", ContentType: "text", Content: "thinking..."},
				{Type: "answer", ContentType: "text", Content: "N58 支持 GPS。"},
				{Type: "answer", ContentType: "text", Content: "second answer, never picked"},
			},
		})
	}))
	defer server.Close()

	client := NewCozeClient(server.URL, "test-token", "bot-1", "conv-1", "user-tag", 5*time.Second)

	answer, err := client.GetAnswer(context.Background(), "N58支持GPS吗")

	require.NoError(t, err)
	assert.Equal(t, "N58 支持 GPS。", answer)
}

func TestCozeClient_GetAnswer_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"msg":"upstream exploded"}`))
	}))
	defer server.Close()

	client := NewCozeClient(server.URL, "test-token", "bot-1", "conv-1", "user-tag", 5*time.Second)

	_, err := client.GetAnswer(context.Background(), "query")

	require.Error(t, err)
	upstreamErr, ok := core.AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "upstream exploded")
}

func TestCozeClient_GetAnswer_NoAnswerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			Messages: []chatMessage{
				{Type: "verbose", ContentType: "text", Content: "no answer here"},
				{Type: "answer", ContentType: "card", Content: "wrong content type"},
			},
		})
	}))
	defer server.Close()

	client := NewCozeClient(server.URL, "test-token", "bot-1", "conv-1", "user-tag", 5*time.Second)

	_, err := client.GetAnswer(context.Background(), "query")

	require.Error(t, err)
	upstreamErr, ok := core.AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestCozeClient_GetAnswer_EmptyMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages":[]}`))
	}))
	defer server.Close()

	client := NewCozeClient(server.URL, "test-token", "bot-1", "conv-1", "user-tag", 5*time.Second)

	_, err := client.GetAnswer(context.Background(), "query")

	require.Error(t, err)
}
