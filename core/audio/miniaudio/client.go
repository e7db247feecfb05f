// Package miniaudio provides microphone capture and speaker playback devices
// backed by malgo. Capture runs at the 16kHz rate the live endpoint expects
// and playback at the 24kHz rate it responds with.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/planetpals/starcall-core/core/audio"
)

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext

	captureClient
	playbackClient
}

// NewClient initializes the backend context. Devices themselves are
// initialized lazily so a client survives a stop/restart cycle of the
// session that owns it.
func NewClient() (*Client, error) {
	audioContext, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	client := &Client{audioContext: audioContext}
	client.captureClient.audioContext = audioContext
	client.playbackClient.audioContext = audioContext
	return client, nil
}

// Stream starts microphone capture. Blocks of CaptureBlockSize samples of
// 16-bit PCM are delivered to onAudio from the device callback goroutine.
func (c *Client) Stream(_ context.Context, onAudio func(pcm []byte)) error {
	return c.captureClient.Start(onAudio)
}

// Close stops and releases both devices. The backend context stays alive so
// the client can stream again; call Shutdown to free it for good.
func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.playbackClient.Uninit()
}

// Shutdown frees the backend context. The client is unusable afterwards.
func (c *Client) Shutdown() {
	c.Close()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.CaptureEncodingInfo()
}

// PlaybackEncodingInfo reports the rate the playback device renders at. The
// capture and playback sides deliberately run at different rates, so the
// playback encoding is exposed under its own name.
func (c *Client) PlaybackEncodingInfo() audio.EncodingInfo {
	return audio.PlaybackEncodingInfo()
}

// Output returns the playback side as a standalone handle, letting callers
// wire capture and playback separately.
func (c *Client) Output() *PlaybackDevice {
	return &PlaybackDevice{client: &c.playbackClient}
}

// PlaybackDevice adapts the playback half of a Client to the output
// interface of the voice session.
type PlaybackDevice struct {
	client *playbackClient
}

func (d *PlaybackDevice) EncodingInfo() audio.EncodingInfo {
	return audio.PlaybackEncodingInfo()
}

func (d *PlaybackDevice) SendAudio(pcm []byte) error {
	return d.client.SendAudio(pcm)
}

func (d *PlaybackDevice) ClearBuffer() {
	d.client.ClearBuffer()
}
