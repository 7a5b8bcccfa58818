package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wesen/grailnav/pkg/navigator"
)

// LiveFramerate is the live_framerate setting. In a file it is either
// false (move the main view only when a drag ends) or a number of updates
// per second, 0 meaning every move.
type LiveFramerate struct {
	OnDragEnd bool
	FPS       float64
}

// Rate converts to the navigator's live rate.
func (f LiveFramerate) Rate() navigator.LiveRate {
	if f.OnDragEnd {
		return navigator.LiveOnDragEnd()
	}
	return navigator.LiveFPS(f.FPS)
}

func (f *LiveFramerate) set(v any) error {
	switch v := v.(type) {
	case bool:
		// true is the same as leaving it unset.
		*f = LiveFramerate{OnDragEnd: !v}
	case int:
		*f = LiveFramerate{FPS: float64(v)}
	case int64:
		*f = LiveFramerate{FPS: float64(v)}
	case float64:
		*f = LiveFramerate{FPS: v}
	default:
		return fmt.Errorf("live_framerate: expected false or a number, got %T", v)
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (f *LiveFramerate) UnmarshalTOML(v any) error { return f.set(v) }

// MarshalTOML implements toml.Marshaler.
func (f LiveFramerate) MarshalTOML() ([]byte, error) {
	if f.OnDragEnd {
		return []byte("false"), nil
	}
	return []byte(strconv.FormatFloat(f.FPS, 'f', -1, 64)), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *LiveFramerate) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return f.set(v)
}

// MarshalYAML implements yaml.Marshaler.
func (f LiveFramerate) MarshalYAML() (any, error) {
	if f.OnDragEnd {
		return false, nil
	}
	return f.FPS, nil
}
