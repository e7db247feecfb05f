package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/planetpals/starcall-core/core/content"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

// Chat is one persona conversation. Each call to StartChat returns an
// independent chat, so several personas can be talked to at once.
type Chat struct {
	chat *genai.Chat
}

// StartChat opens a conversation with the persona for the given role in the
// given city.
func (c *Client) StartChat(ctx context.Context, planetName, cityName string, role content.Role) (*Chat, error) {
	ctx, span := tracer.Start(ctx, "start persona chat")
	defer span.End()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(role.SystemInstruction(planetName, cityName), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.8),
	}

	chat, err := c.genaiClient.Chats.Create(ctx, c.model, config, nil)
	if err != nil {
		err = fmt.Errorf("failed to start persona chat: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &Chat{chat: chat}, nil
}

// Send forwards one message and returns the persona's reply.
func (c *Chat) Send(ctx context.Context, message string) (string, error) {
	ctx, span := tracer.Start(ctx, "send persona message")
	defer span.End()

	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		err = fmt.Errorf("failed to send chat message: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Text()), nil
}
