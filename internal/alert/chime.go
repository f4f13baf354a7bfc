package alert

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andy/countdown/internal/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Chime plays a short two-note tone when a countdown completes. The speaker
// is opened on first use; if that fails audio stays off for the process.
type Chime struct {
	logger  *slog.Logger
	enabled bool
	freq    float64
	note    time.Duration

	once  sync.Once
	mu    sync.Mutex
	ready bool
}

// NewChime creates a chime from the alert config
func NewChime(cfg config.AlertConfig, logger *slog.Logger) *Chime {
	freq := cfg.FrequencyHz
	if freq <= 0 {
		freq = 880
	}
	note := time.Duration(cfg.DurationMS) * time.Millisecond
	if note <= 0 {
		note = 250 * time.Millisecond
	}
	return &Chime{
		logger:  logger,
		enabled: cfg.Sound,
		freq:    freq,
		note:    note,
	}
}

// Notify plays the chime without blocking
func (c *Chime) Notify() {
	if !c.enabled {
		return
	}

	c.once.Do(c.init)
	if !c.ready {
		return
	}

	melody, err := c.melody()
	if err != nil {
		c.logger.Warn("failed to build chime", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	speaker.Play(melody)
}

func (c *Chime) init() {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		c.logger.Warn("audio disabled: failed to initialize speaker", "error", err)
		return
	}
	c.ready = true
}

// melody is the base note, a short rest, then a fifth above
func (c *Chime) melody() (beep.Streamer, error) {
	low, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return nil, fmt.Errorf("low note: %w", err)
	}
	high, err := generators.SineTone(sampleRate, c.freq*1.5)
	if err != nil {
		return nil, fmt.Errorf("high note: %w", err)
	}

	n := sampleRate.N(c.note)
	return beep.Seq(
		beep.Take(n, low),
		beep.Silence(n/2),
		beep.Take(n, high),
	), nil
}

// Silent is a notifier that does nothing
type Silent struct{}

func (Silent) Notify() {}
