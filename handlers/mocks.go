package handlers

import (
	"github.com/stretchr/testify/mock"
)

// MockErrorCapturer is a mock implementation of ErrorCapturer
type MockErrorCapturer struct {
	mock.Mock
}

func (m *MockErrorCapturer) CaptureError(err error, context string) {
	m.Called(err, context)
}
