package media

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/ainaplanass/exam/adapter"
	"github.com/ainaplanass/exam/document"
)

// Option configures a MediaPlayer.
type Option func(*MediaPlayer)

// WithLogger sets the player's logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *MediaPlayer) { p.logger = l }
}

// WithFormat teaches the player a new file extension: newSource builds the
// native source for a path and adapt turns it into a Player. S must be a
// concrete type.
func WithFormat[S any](ext string, newSource func(path string) S, adapt func(S) Player) Option {
	return func(p *MediaPlayer) {
		p.sources[ext] = func(path string) any { return newSource(path) }
		adapter.Register(p.adapters, adapt)
	}
}

// MediaPlayer plays files by name. The extension selects the source type
// from a table; the source's type selects the adapter.
type MediaPlayer struct {
	sources  map[string]func(path string) any
	adapters *adapter.Registry[Player]
	logger   *slog.Logger
}

// NewMediaPlayer creates a player that understands mp3 and wav files.
func NewMediaPlayer(opts ...Option) *MediaPlayer {
	p := &MediaPlayer{
		sources: map[string]func(string) any{
			"mp3": func(path string) any { return MP3Source{Path: path} },
			"wav": func(path string) any { return WAVSource{Path: path} },
		},
		logger: slog.Default(),
	}
	p.adapters = NewRegistry(nil)
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// PlayAudio plays filename. Files with an extension the player does not
// know, or with none, return an error wrapping
// capability.ErrFormatUnsupported. A blank filename returns an error
// wrapping capability.ErrConstruction.
func (p *MediaPlayer) PlayAudio(filename string) (string, error) {
	doc, err := document.New(filename, 0, "audio", nil)
	if err != nil {
		return "", fmt.Errorf("media: %w", err)
	}
	src := p.source(doc)
	player, err := p.adapters.Adapt(src)
	if err != nil {
		return "", fmt.Errorf("media: %s: %w", filename, err)
	}
	out, err := player.Play()
	if err != nil {
		p.logger.Warn("media: cannot play file", "file", filename, "error", err)
		return "", fmt.Errorf("media: %s: %w", filename, err)
	}
	return out, nil
}

func (p *MediaPlayer) source(doc *document.Document) any {
	if newSource, ok := p.sources[doc.Extension]; ok {
		return newSource(doc.Filename)
	}
	return UnknownSource{Path: doc.Filename}
}

func reflectKind(v any) string {
	return reflect.TypeOf(v).String()
}
