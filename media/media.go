// Package media plays audio files of different native formats through one
// Player capability. Each format's decoder keeps its own API; an adapter per
// format maps it onto Play.
package media

import (
	"log/slog"

	"github.com/ainaplanass/exam/adapter"
	"github.com/ainaplanass/exam/document"
)

// Player is the capability every format is normalized to.
type Player interface {
	Play() (string, error)
}

// MP3Source is an MP3 file with its native decoder API.
type MP3Source struct {
	Path string
}

// DecodeMP3 decodes and plays the file.
func (s MP3Source) DecodeMP3() string { return "Reproduciendo MP3: " + s.Path }

// WAVSource is a WAV file with its native streaming API.
type WAVSource struct {
	Path string
}

// StreamWAV streams the file.
func (s WAVSource) StreamWAV() string { return "Reproduciendo archivo WAV: " + s.Path }

// UnknownSource is a file in a format nothing can decode.
type UnknownSource struct {
	Path string
}

// MP3Adapter plays an MP3Source.
type MP3Adapter struct {
	src MP3Source
}

func (a MP3Adapter) Play() (string, error) { return a.src.DecodeMP3(), nil }

// WAVAdapter plays a WAVSource.
type WAVAdapter struct {
	src WAVSource
}

func (a WAVAdapter) Play() (string, error) { return a.src.StreamWAV(), nil }

// unsupported is the Player for sources with no decoder. Play always fails.
type unsupported struct {
	kind string
}

func (u unsupported) Play() (string, error) {
	return "", &adapter.UnsupportedError{Kind: u.kind}
}

// NewRegistry returns an adapter registry with the MP3 and WAV adapters.
// UnknownSource and any unregistered type adapt to a Player whose Play
// reports capability.ErrFormatUnsupported.
func NewRegistry(logger *slog.Logger) *adapter.Registry[Player] {
	r := adapter.NewRegistry(
		adapter.WithLogger[Player](logger),
		adapter.WithFallback(func(v any) Player {
			return unsupported{kind: reflectKind(v)}
		}),
	)
	adapter.Register(r, func(s MP3Source) Player { return MP3Adapter{src: s} })
	adapter.Register(r, func(s WAVSource) Player { return WAVAdapter{src: s} })
	adapter.Register(r, func(s UnknownSource) Player { return unsupported{kind: document.Extension(s.Path)} })
	return r
}

var defaultRegistry = NewRegistry(nil)

// Adapt wraps src in the Player for its format.
func Adapt(src any) (Player, error) {
	return defaultRegistry.Adapt(src)
}
