package core

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"fangbot/models"
)

// MockConversationalBackend implements ConversationalBackend for testing
type MockConversationalBackend struct {
	mock.Mock
}

func (m *MockConversationalBackend) GetAnswer(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// MockLookupResponder implements LookupResponder for testing
type MockLookupResponder struct {
	mock.Mock
}

func (m *MockLookupResponder) GetAnswer(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// MockDispatcher implements Dispatcher for testing
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendMessage(
	ctx context.Context,
	msg *models.InboundMessage,
	payload models.OutboundPayload,
) (json.RawMessage, error) {
	args := m.Called(ctx, msg, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockMessageRecorder implements MessageRecorder for testing
type MockMessageRecorder struct {
	mock.Mock
}

func (m *MockMessageRecorder) RecordExchange(
	ctx context.Context,
	contactName, queryText, botResponse, roomTopic string,
	classification int,
) (*models.MessageLog, error) {
	args := m.Called(ctx, contactName, queryText, botResponse, roomTopic, classification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageLog), args.Error(1)
}

// MockDedupChecker implements DedupChecker for testing
type MockDedupChecker struct {
	mock.Mock
}

func (m *MockDedupChecker) CheckAndMark(messageID string) bool {
	args := m.Called(messageID)
	return args.Bool(0)
}
