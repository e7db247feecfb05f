package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/planetpals/starcall-core/core/audio"
	"github.com/planetpals/starcall-core/core/live"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultModel is the native-audio conversational model the voice call
	// uses unless overridden.
	DefaultModel = "gemini-2.5-flash-native-audio-preview-09-2025"
	// DefaultVoice is the prebuilt voice the astronaut persona speaks with.
	DefaultVoice = "Zephyr"

	connectURL = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
)

// Client streams microphone frames to the live endpoint and forwards server
// events through the callbacks registered at connect time.
//
// One Client instance serves one connection; the streaming session creates a
// fresh one per generation.
type Client struct {
	model string

	conn   *websocket.Conn
	connMu sync.Mutex
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{model: DefaultModel}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Connect performs the websocket handshake and sends the session setup
// message. The open callback fires once the server acknowledges setup, which
// is the point the session may treat the connection as usable.
func (c *Client) Connect(ctx context.Context, opts ...live.ConnectOption) error {
	ctx, span := tracer.Start(ctx, "connect live session", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	options := live.ConnectOptions{
		Voice:           DefaultVoice,
		CaptureEncoding: audio.CaptureEncodingInfo(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	apiKey, ok := os.LookupEnv("GEMINI_API_KEY")
	if !ok {
		err := fmt.Errorf("gemini api key not found")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	connectionURL, _ := url.Parse(connectURL)
	queryParams := connectionURL.Query()
	queryParams.Set("key", apiKey)
	connectionURL.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, connectionURL.String(), nil)
	if err != nil {
		err = fmt.Errorf("failed to open socket connection to live endpoint: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	setup := clientMessage{Setup: &setupPayload{
		Model: "models/" + c.model,
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{VoiceConfig: &voiceConfig{
				PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: options.Voice},
			}},
		},
		InputAudioTranscription:  &struct{}{},
		OutputAudioTranscription: &struct{}{},
	}}
	if options.Persona != "" {
		setup.Setup.SystemInstruction = &contentPayload{Parts: []part{{Text: options.Persona}}}
	}

	if err := conn.WriteJSON(setup); err != nil {
		conn.Close()
		err = fmt.Errorf("failed to send session setup: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("request.model", c.model))

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	go c.readAndProcessMessages(ctx, conn, options)
	return nil
}

// SendAudio forwards one capture frame. Frames share a single write mutex so
// they reach the endpoint in production order.
func (c *Client) SendAudio(frame audio.CaptureFrame) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("live session is not connected")
	}

	message := clientMessage{RealtimeInput: &realtimeInputPayload{
		MediaChunks: []inlineData{{MIMEType: frame.MIMEType, Data: frame.Data}},
	}}
	if err := c.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write audio frame to live endpoint: %w", err)
	}
	return nil
}

// Close requests session shutdown. Best-effort: the read loop observes the
// closed connection and finishes on its own. Closing an already-closed or
// never-connected client is a no-op, and the client may connect again
// afterwards.
func (c *Client) Close() error {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()

	if conn != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
	return nil
}

func (c *Client) readAndProcessMessages(ctx context.Context, conn *websocket.Conn, options live.ConnectOptions) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.connMu.Lock()
			c.conn = nil
			c.connMu.Unlock()
			conn.Close()

			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if options.CloseCallback != nil {
					options.CloseCallback("remote endpoint closed the session")
				}
				return
			}
			if ctx.Err() != nil {
				if options.CloseCallback != nil {
					options.CloseCallback("session cancelled")
				}
				return
			}

			logger.ErrorContext(ctx, "failed to read live endpoint message", "error", err)
			if options.ErrorCallback != nil {
				options.ErrorCallback(err.Error())
			}
			return
		}

		// Events must reach the session in arrival order, so messages are
		// handled inline rather than handed to a goroutine.
		c.processMessage(msg, options)
	}
}

func (c *Client) processMessage(msg []byte, options live.ConnectOptions) {
	var parsedMsg serverMessage
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		logger.Error("failed to unmarshal live endpoint message", "error", err)
		return
	}

	if parsedMsg.SetupComplete != nil {
		if options.OpenCallback != nil {
			options.OpenCallback()
		}
		return
	}

	if content := parsedMsg.ServerContent; content != nil {
		if content.OutputTranscription != nil && options.TranscriptDeltaCallback != nil {
			options.TranscriptDeltaCallback("assistant", content.OutputTranscription.Text)
		} else if content.InputTranscription != nil && options.TranscriptDeltaCallback != nil {
			options.TranscriptDeltaCallback("user", content.InputTranscription.Text)
		}

		if content.TurnComplete && options.TurnCompleteCallback != nil {
			options.TurnCompleteCallback()
		}

		if content.ModelTurn != nil && options.SpeechChunkCallback != nil {
			for _, modelPart := range content.ModelTurn.Parts {
				if modelPart.InlineData == nil || modelPart.InlineData.Data == "" {
					continue
				}
				if !strings.HasPrefix(modelPart.InlineData.MIMEType, "audio/") {
					continue
				}
				options.SpeechChunkCallback(modelPart.InlineData.Data, modelPart.InlineData.MIMEType)
			}
		}

		if content.Interrupted && options.InterruptedCallback != nil {
			options.InterruptedCallback()
		}
		return
	}

	if parsedMsg.GoAway != nil && options.CloseCallback != nil {
		options.CloseCallback("remote endpoint is going away")
	}
}
