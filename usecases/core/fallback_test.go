package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerUnusable(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		unusable bool
	}{
		{
			name:     "canned cannot-answer phrase",
			answer:   "您好，您提问的内容我暂时无法解答，可以联系我司FAE同事进行解答，谢谢",
			unusable: true,
		},
		{
			name:     "canned phrase without greeting",
			answer:   "您提问的内容我暂时无法解答，可以联系我司FAE同事进行解答，谢谢！",
			unusable: true,
		},
		{
			name:     "apology phrasing",
			answer:   "很抱歉，我无法回答这个问题。",
			unusable: true,
		},
		{
			name:     "short apology phrasing",
			answer:   "抱歉，没有找到相关资料。",
			unusable: true,
		},
		{
			name:     "references marker without a link",
			answer:   "N58-CA 支持 GPS 功能。\n💾 资料链接:",
			unusable: true,
		},
		{
			name:     "references marker with a link passes through",
			answer:   "N58-CA 支持 GPS 功能。\n💾 资料链接: https://example.com/N58-CA-GPS",
			unusable: false,
		},
		{
			name:     "ordinary answer passes through",
			answer:   "N58 支持 GPS 功能，具体请参考规格书。",
			unusable: false,
		},
		{
			name:     "empty answer has no canned phrase",
			answer:   "",
			unusable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unusable, AnswerUnusable(tt.answer))
		})
	}
}
