package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/planetpals/starcall-core/core/audio"
)

type captureClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	// block accumulates device callback data until a full capture block is
	// ready; listeners always see fixed-size blocks regardless of the period
	// size the backend settles on.
	block   []byte
	onAudio func(pcm []byte)

	mu sync.Mutex
}

func (c *captureClient) init() error {
	sampleRate := uint32(audio.CaptureSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels
	blockBytes := audio.CaptureBlockSize * bytesPerFrame

	c.config = malgo.DefaultDeviceConfig(malgo.Capture)
	c.config.SampleRate = sampleRate
	c.config.Capture.Format = format
	c.config.Capture.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PerformanceProfile = malgo.LowLatency
	c.config.PeriodSizeInFrames = uint32(audio.CaptureBlockSize)
	c.config.Periods = 3

	var err error
	c.device, err = malgo.InitDevice(c.audioContext.Context, c.config, malgo.DeviceCallbacks{
		Data: func(_, pInput []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame
			if len(pInput) < n || n == 0 {
				return
			}

			c.mu.Lock()
			onAudio := c.onAudio
			c.block = append(c.block, pInput[:n]...)
			var ready [][]byte
			for len(c.block) >= blockBytes {
				block := make([]byte, blockBytes)
				copy(block, c.block[:blockBytes])
				c.block = c.block[blockBytes:]
				ready = append(ready, block)
			}
			c.mu.Unlock()

			if onAudio == nil {
				return
			}
			for _, block := range ready {
				onAudio(block)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	return nil
}

func (c *captureClient) Start(onAudio func(pcm []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		if err := c.init(); err != nil {
			return err
		}
	} else if c.device.IsStarted() {
		return nil
	}

	c.onAudio = onAudio
	c.block = nil

	if err := c.device.Start(); err != nil {
		c.onAudio = nil
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	return nil
}

func (c *captureClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil || !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}

	c.onAudio = nil
	c.block = nil
	return nil
}

func (c *captureClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}

	c.onAudio = nil
	c.block = nil
	return nil
}
