package core

import (
	"strings"
)

// referencesMarker is emitted by the backend when it claims to attach
// document links. An answer carrying the marker without any literal URL
// scheme promised a link it didn't provide.
const referencesMarker = "💾 资料链接:"

const urlScheme = "http"

// cannedPhrases are the backend's fixed "cannot answer" responses. Containment
// of any of them marks the answer unusable.
var cannedPhrases = []string{
	"您好，您提问的内容我暂时无法解答，可以联系我司FAE同事进行解答，谢谢",
	"您提问的内容我暂时无法解答，可以联系我司FAE同事进行解答，谢谢",
	"很抱歉",
	"抱歉",
}

// AnswerUnusable reports whether a backend answer should be replaced by the
// secondary lookup responder. A plain OR of substring containment checks; no
// fuzzy matching.
func AnswerUnusable(answer string) bool {
	for _, phrase := range cannedPhrases {
		if strings.Contains(answer, phrase) {
			return true
		}
	}

	return strings.Contains(answer, referencesMarker) && !strings.Contains(answer, urlScheme)
}
