package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"fangbot/core"
	"fangbot/models"
	usecases "fangbot/usecases/core"
)

// ErrorCapturer records processing failures with cooldown dedup so a flapping
// upstream doesn't flood the failure log
type ErrorCapturer interface {
	CaptureError(err error, context string)
}

// HubEventsHandler receives inbound message webhooks from the messaging hub
type HubEventsHandler struct {
	callbackSecret string
	coreUseCase    *usecases.CoreUseCase
	errorCapture   ErrorCapturer
}

func NewHubEventsHandler(callbackSecret string, coreUseCase *usecases.CoreUseCase, errorCapture ErrorCapturer) *HubEventsHandler {
	return &HubEventsHandler{
		callbackSecret: callbackSecret,
		coreUseCase:    coreUseCase,
		errorCapture:   errorCapture,
	}
}

func (h *HubEventsHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering hub webhook endpoints")

	router.HandleFunc("/api/receive_data", h.HandleReceiveData).Methods("POST")
	log.Printf("✅ POST /api/receive_data endpoint registered")
}

// verifyHubSignature checks msg_signature against an HMAC-SHA256 of
// "timestamp:nonce:body". Only enforced when a callback secret is configured;
// without one the signature params are validated for presence only, matching
// the hub's legacy callback contract.
func (h *HubEventsHandler) verifyHubSignature(signature, timestamp, nonce string, body []byte) error {
	if h.callbackSecret == "" {
		return nil
	}

	baseString := fmt.Sprintf("%s:%s:%s", timestamp, nonce, string(body))

	mac := hmac.New(sha256.New, []byte(h.callbackSecret))
	mac.Write([]byte(baseString))
	expectedSignature := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

func (h *HubEventsHandler) HandleReceiveData(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Hub event received from %s", r.RemoteAddr)

	query := r.URL.Query()
	msgSignature := query.Get("msg_signature")
	timestamp := query.Get("timestamp")
	nonce := query.Get("nonce")

	if msgSignature == "" || timestamp == "" || nonce == "" {
		writeError(w, http.StatusBadRequest, "Query parameters are missing")
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(bodyBytes) == 0 {
		writeError(w, http.StatusBadRequest, "No JSON data provided in the request body")
		return
	}

	if err := h.verifyHubSignature(msgSignature, timestamp, nonce, bodyBytes); err != nil {
		log.Printf("❌ Hub signature verification failed: %v", err)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var msg models.InboundMessage
	if err := json.Unmarshal(bodyBytes, &msg); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		writeError(w, http.StatusBadRequest, "failed to parse body")
		return
	}

	if err := validateInboundMessage(&msg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.coreUseCase.ProcessHubMessage(r.Context(), &msg)
	if err != nil {
		h.errorCapture.CaptureError(err, fmt.Sprintf("failed to process message %s", msg.MessageID))

		// Upstream failures keep their original status and body text so the
		// hub operator can see what the collaborator actually said.
		if upstreamErr, ok := core.AsUpstreamError(err); ok {
			writeError(w, upstreamErr.StatusCode, upstreamErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch result.Status {
	case usecases.StatusSuccess:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":        result.Status,
			"send_response": result.SendResponse,
			"query_params": map[string]string{
				"msg_signature": msgSignature,
				"timestamp":     timestamp,
				"nonce":         nonce,
			},
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"status": result.Status,
			"reason": result.Reason,
		})
	}
}

func validateInboundMessage(msg *models.InboundMessage) error {
	if msg.IMBotID == "" {
		return fmt.Errorf("imBotId is required")
	}
	if msg.MessageType == nil {
		return fmt.Errorf("messageType is required")
	}
	if msg.Payload.Text == "" {
		return fmt.Errorf("payload.text is required")
	}
	if msg.Token == "" {
		return fmt.Errorf("token is required")
	}
	if msg.MessageID == "" {
		return fmt.Errorf("messageId is required")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
