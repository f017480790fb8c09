package player

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Output renders one clip to the audio device. The returned channel closes
// when the clip finishes naturally; it stays open after Stop.
type Output interface {
	Play(path string) (<-chan struct{}, error)
	Pause()
	Resume()
	Stop()
}

// SpeakerOutput plays MP3 clips through the system speaker.
type SpeakerOutput struct {
	mu       sync.Mutex
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
}

func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{}
}

func (o *SpeakerOutput) Play(path string) (<-chan struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode clip %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, err
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	o.mu.Lock()
	o.ctrl = ctrl
	o.streamer = streamer
	o.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		close(done)
	})))
	return done, nil
}

func (o *SpeakerOutput) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl != nil {
		speaker.Lock()
		o.ctrl.Paused = true
		speaker.Unlock()
	}
}

func (o *SpeakerOutput) Resume() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl != nil {
		speaker.Lock()
		o.ctrl.Paused = false
		speaker.Unlock()
	}
}

func (o *SpeakerOutput) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	speaker.Clear()
	if o.streamer != nil {
		o.streamer.Close()
		o.streamer = nil
		o.ctrl = nil
	}
}
