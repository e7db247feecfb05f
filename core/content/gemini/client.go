// Package gemini implements the generative content client: structured city
// sketches and planet profiles, image prompt and souvenir photo generation,
// and persona text chat.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash"
	// DefaultImageModel is the model used for image generation and
	// re-imagining calls.
	DefaultImageModel = "gemini-2.5-flash-image"
)

type Client struct {
	genaiClient *genai.Client

	apiKey     string
	model      string
	imageModel string
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithImageModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.imageModel = model
		}
	}
}

func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	apiKey, ok := os.LookupEnv("GEMINI_API_KEY")
	if !ok {
		return nil, fmt.Errorf("gemini api key not found")
	}

	client := &Client{
		apiKey:     apiKey,
		model:      DefaultModel,
		imageModel: DefaultImageModel,
	}
	for _, opt := range opts {
		opt(client)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}
	client.genaiClient = genaiClient

	return client, nil
}
