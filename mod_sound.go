package snowfall

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

const speakerRate = beep.SampleRate(48000)

// audioPlayer is the device side of the ambient track.
type audioPlayer interface {
	SetPaused(paused bool)
	Close()
}

// SoundState owns the ambient track. Enabled is the user's choice and may be
// toggled before the track finished loading.
type SoundState struct {
	Enabled bool
	Volume  float64

	player audioPlayer
	logger Logger
}

// Toggle flips playback and returns the new Enabled value.
func (s *SoundState) Toggle() bool {
	s.Enabled = !s.Enabled
	if s.player != nil {
		s.player.SetPaused(!s.Enabled)
	}
	if s.logger != nil {
		s.logger.Debugf("sound enabled: %v", s.Enabled)
	}
	return s.Enabled
}

// Playing reports whether audio is actually audible.
func (s *SoundState) Playing() bool {
	return s.Enabled && s.player != nil
}

func (s *SoundState) Loaded() bool {
	return s.player != nil
}

func (s *SoundState) attach(p audioPlayer) {
	if s.player != nil {
		s.player.Close()
	}
	s.player = p
	p.SetPaused(!s.Enabled)
}

func (s *SoundState) close() {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

type SoundModule struct {
	Enabled bool
	Volume  float64
}

func (mod SoundModule) Install(app *App, cmd *Commands) {
	state := &SoundState{
		Enabled: mod.Enabled,
		Volume:  mod.Volume,
		logger:  app.Logger(),
	}
	cmd.AddResources(state)
	app.onCleanup(state.close)
}

// decodeTrack reads an mp3 file fully into memory.
func decodeTrack(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buffer, nil
}

var speakerInit struct {
	once sync.Once
	err  error
}

func initSpeaker() error {
	speakerInit.once.Do(func() {
		speakerInit.err = speaker.Init(speakerRate, speakerRate.N(time.Millisecond*100))
	})
	return speakerInit.err
}

type beepPlayer struct {
	ctrl *beep.Ctrl
}

// newBeepPlayer starts the track looping forever, paused until SetPaused(false).
func newBeepPlayer(buffer *beep.Buffer, volume float64) (*beepPlayer, error) {
	if err := initSpeaker(); err != nil {
		return nil, err
	}
	var streamer beep.Streamer = beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	if rate := buffer.Format().SampleRate; rate != speakerRate {
		streamer = beep.Resample(4, rate, speakerRate, streamer)
	}
	p := &beepPlayer{
		ctrl: &beep.Ctrl{Streamer: newVolume(streamer, volume), Paused: true},
	}
	speaker.Play(p.ctrl)
	return p, nil
}

func (p *beepPlayer) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *beepPlayer) Close() {
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()
}

// math.Log2(0) is -Inf, so zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
