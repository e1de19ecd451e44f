package api

import (
	"context"
	"net/http"

	"abhyaasi/models"
)

type ChatClient struct {
	c *Client
}

type chatRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history,omitempty"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Send sends a chat message with prior history and returns the assistant's
// reply.
func (ch *ChatClient) Send(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	var out chatReply
	body := chatRequest{Message: message, History: history}
	if err := ch.c.do(ctx, http.MethodPost, "/api/ai/chat", body, &out, callOpts{auth: true}); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// VoiceSend sends a transcribed voice message.
func (ch *ChatClient) VoiceSend(ctx context.Context, transcript string) (string, error) {
	var out chatReply
	body := chatRequest{Message: transcript}
	if err := ch.c.do(ctx, http.MethodPost, "/api/ai/voice-chat", body, &out, callOpts{auth: true}); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// PlatformSend asks the platform assistant (navigation and catalog help).
func (ch *ChatClient) PlatformSend(ctx context.Context, message string) (string, error) {
	var out chatReply
	body := chatRequest{Message: message}
	if err := ch.c.do(ctx, http.MethodPost, "/api/ai/platform-chat", body, &out, callOpts{auth: true}); err != nil {
		return "", err
	}
	return out.Reply, nil
}
