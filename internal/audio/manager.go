package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-dino/internal/config"
)

// Loader produces the buffer for one effect.
type Loader func(fx SoundFX) (*beep.Buffer, error)

// Output receives streams to play. Implementations must be safe for
// concurrent use.
type Output interface {
	Play(s beep.Streamer)
}

// speakerOutput mixes streams into the system speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Manager caches effect buffers and plays them.
type Manager struct {
	mu      sync.Mutex
	cache   map[SoundFX]*beep.Buffer
	pending map[SoundFX]bool

	load   Loader
	out    Output
	volume float64
	rate   beep.SampleRate
	logger *log.Logger

	wg sync.WaitGroup
}

// NewManager creates a manager that synthesises effects at the configured
// sample rate. Nothing is audible until Init succeeds.
func NewManager(cfg config.AudioConfig, logger *log.Logger) *Manager {
	rate := beep.SampleRate(cfg.SampleRate)
	m := NewManagerWith(func(fx SoundFX) (*beep.Buffer, error) {
		return Synthesize(fx, rate)
	}, nil, cfg.Volume, logger)
	m.rate = rate
	return m
}

// NewManagerWith creates a manager with an explicit loader and output.
func NewManagerWith(load Loader, out Output, volume float64, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		cache:   make(map[SoundFX]*beep.Buffer),
		pending: make(map[SoundFX]bool),
		load:    load,
		out:     out,
		volume:  volume,
		logger:  logger,
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	if m.rate <= 0 {
		return fmt.Errorf("audio: invalid sample rate %d", m.rate)
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: open speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	m.mu.Lock()
	m.out = &speakerOutput{mixer: mixer}
	m.mu.Unlock()
	return nil
}

// Preload loads every effect in fxs into the cache.
func (m *Manager) Preload(ctx context.Context, fxs ...SoundFX) error {
	for _, fx := range fxs {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf, err := m.load(fx)
		if err != nil {
			return fmt.Errorf("audio: preload %s: %w", fx, err)
		}
		m.mu.Lock()
		m.cache[fx] = buf
		m.mu.Unlock()
	}
	m.logger.Debug("sounds preloaded", "count", len(fxs))
	return nil
}

// Cached reports whether fx is in the cache.
func (m *Manager) Cached(fx SoundFX) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cache[fx]
	return ok
}

// Play starts fx. An uncached effect is loaded in the background and played
// once ready; if loading fails the request is dropped.
func (m *Manager) Play(fx SoundFX) {
	m.mu.Lock()
	buf, ok := m.cache[fx]
	out := m.out
	if ok {
		m.mu.Unlock()
		m.emit(out, buf)
		return
	}
	if m.pending[fx] {
		m.mu.Unlock()
		return
	}
	m.pending[fx] = true
	m.mu.Unlock()

	m.logger.Warn("loading sound on demand", "sound", fx, "error", ErrMissingCacheEntry)
	m.wg.Add(1)
	go m.loadAndPlay(fx)
}

func (m *Manager) loadAndPlay(fx SoundFX) {
	defer m.wg.Done()

	buf, err := m.load(fx)

	m.mu.Lock()
	delete(m.pending, fx)
	if err != nil {
		m.mu.Unlock()
		m.logger.Error("dropping sound", "sound", fx, "error", err)
		return
	}
	m.cache[fx] = buf
	out := m.out
	m.mu.Unlock()

	m.emit(out, buf)
}

func (m *Manager) emit(out Output, buf *beep.Buffer) {
	if out == nil {
		return
	}
	out.Play(newVolume(buf.Streamer(0, buf.Len()), m.volume))
}

// Wait blocks until background loads finish.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close waits for background loads and silences the speaker.
func (m *Manager) Close() {
	m.Wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	if so, ok := m.out.(*speakerOutput); ok {
		speaker.Lock()
		so.mixer.Clear()
		speaker.Unlock()
	}
}
