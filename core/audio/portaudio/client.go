// Package portaudio provides an alternative device backend. Unlike the
// miniaudio backend it opens two independent streams, since capture and
// playback run at different sample rates.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/planetpals/starcall-core/core/audio"
)

type Client struct {
	mu sync.Mutex

	in       []int16
	out      []int16
	inStream *portaudio.Stream

	outStream     *portaudio.Stream
	pendingAudio  []byte
	outBufferSize int

	cancelCapture context.CancelFunc
}

func NewClient() (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	client := &Client{
		in:            make([]int16, audio.CaptureBlockSize),
		outBufferSize: audio.PlaybackSampleRate / 10,
	}
	client.out = make([]int16, client.outBufferSize)
	return client, nil
}

// Stream opens the capture stream and reads blocks on a background
// goroutine until the context is cancelled or the client is closed.
func (c *Client) Stream(ctx context.Context, onAudio func(pcm []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inStream != nil {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, audio.CaptureSampleRate, audio.CaptureBlockSize, c.in)
	if err != nil {
		return fmt.Errorf("failed to open capture stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start capture stream: %w", err)
	}
	c.inStream = stream

	ctx, cancel := context.WithCancel(ctx)
	c.cancelCapture = cancel

	go func() {
		for ctx.Err() == nil {
			if err := stream.Read(); err != nil {
				return
			}

			block := bytes.Buffer{}
			_ = binary.Write(&block, binary.LittleEndian, c.in)
			onAudio(block.Bytes())
		}
	}()
	return nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelCapture != nil {
		c.cancelCapture()
		c.cancelCapture = nil
	}
	if c.inStream != nil {
		_ = c.inStream.Abort()
		c.inStream.Close()
		c.inStream = nil
	}
	if c.outStream != nil {
		_ = c.outStream.Abort()
		c.outStream.Close()
		c.outStream = nil
	}
	c.pendingAudio = nil
}

// Shutdown releases the backend. The client is unusable afterwards.
func (c *Client) Shutdown() {
	c.Close()
	_ = portaudio.Terminate()
}

// SendAudio writes full output buffers to the playback stream and keeps the
// tail for the next call.
func (c *Client) SendAudio(pcm []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.outStream == nil {
		stream, err := portaudio.OpenDefaultStream(0, 1, audio.PlaybackSampleRate, c.outBufferSize, c.out)
		if err != nil {
			return fmt.Errorf("failed to open playback stream: %w", err)
		}
		if err := stream.Start(); err != nil {
			stream.Close()
			return fmt.Errorf("failed to start playback stream: %w", err)
		}
		c.outStream = stream
	}

	bufferBytes := c.outBufferSize * 2
	c.pendingAudio = append(c.pendingAudio, pcm...)
	for len(c.pendingAudio) >= bufferBytes {
		_ = binary.Read(bytes.NewBuffer(c.pendingAudio[:bufferBytes]), binary.LittleEndian, c.out)
		c.pendingAudio = c.pendingAudio[bufferBytes:]
		if err := c.outStream.Write(); err != nil {
			return fmt.Errorf("failed to write to playback stream: %w", err)
		}
	}
	return nil
}

func (c *Client) ClearBuffer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingAudio = nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.CaptureEncodingInfo()
}

// Output returns the playback side as a standalone handle reporting the
// playback encoding.
func (c *Client) Output() *PlaybackDevice {
	return &PlaybackDevice{client: c}
}

type PlaybackDevice struct {
	client *Client
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
