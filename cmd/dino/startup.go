package main

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/engine"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// services are the collaborators prepared before the loop starts.
type services struct {
	sheet *dino.SpriteSheet
	sound *audio.Manager // nil when sound is off
	store *storage.Store // nil without --profile-db
}

// player returns the effect player for the game.
func (s *services) player() audio.Player {
	if s.sound == nil {
		return audio.Nop{}
	}
	return s.sound
}

// Close releases audio and storage.
func (s *services) Close() {
	if s.sound != nil {
		s.sound.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// startServices validates the sprite sheet, prepares sound and opens the
// profile store concurrently. Nothing is returned unless all succeed.
func startServices(ctx context.Context, cfg config.DinoConfig, withSound bool, logger *log.Logger) (*services, error) {
	svc := &services{sheet: dino.NewSpriteSheet()}
	var mu sync.Mutex

	err := engine.Startup(ctx,
		engine.Initializer{
			Name: "sprites",
			Run: func(context.Context) error {
				return svc.sheet.Validate()
			},
		},
		engine.Initializer{
			Name: "audio",
			Run: func(ctx context.Context) error {
				if !withSound || !cfg.Audio.Enabled {
					return nil
				}
				m := audio.NewManager(cfg.Audio, logger.WithPrefix("audio"))
				if err := m.Init(); err != nil {
					// No output device is not fatal: play silently.
					logger.Warn("sound disabled", "error", err)
					return nil
				}
				if err := m.Preload(ctx, audio.All...); err != nil {
					m.Close()
					return err
				}
				mu.Lock()
				svc.sound = m
				mu.Unlock()
				return nil
			},
		},
		engine.Initializer{
			Name: "profiles",
			Run: func(context.Context) error {
				if flagProfileDB == "" {
					return nil
				}
				store, err := storage.Open(flagProfileDB)
				if err != nil {
					return err
				}
				mu.Lock()
				svc.store = store
				mu.Unlock()
				return nil
			},
		},
	)
	if err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

// isStartupFailure reports whether err came from the startup barrier.
func isStartupFailure(err error) bool {
	return errors.Is(err, engine.ErrStartupFailure)
}
