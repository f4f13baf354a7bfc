package alert

import (
	"testing"
	"time"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/logging"
)

func TestChime_MelodyLength(t *testing.T) {
	c := NewChime(config.AlertConfig{Sound: true, FrequencyHz: 440, DurationMS: 100}, logging.Discard())

	melody, err := c.melody()
	if err != nil {
		t.Fatalf("melody: %v", err)
	}

	n := sampleRate.N(100 * time.Millisecond)
	want := n + n/2 + n

	buf := make([][2]float64, 512)
	got := 0
	for {
		read, ok := melody.Stream(buf)
		got += read
		if !ok || read == 0 {
			break
		}
	}
	if got != want {
		t.Fatalf("expected %d samples, got %d", want, got)
	}
}

func TestChime_DisabledNeverOpensSpeaker(t *testing.T) {
	c := NewChime(config.AlertConfig{Sound: false}, logging.Discard())
	c.Notify()
	if c.ready {
		t.Fatalf("disabled chime must not initialise audio")
	}
}

func TestNewChime_Defaults(t *testing.T) {
	c := NewChime(config.AlertConfig{Sound: true}, logging.Discard())
	if c.freq != 880 || c.note != 250*time.Millisecond {
		t.Fatalf("unexpected defaults freq=%v note=%v", c.freq, c.note)
	}
}
