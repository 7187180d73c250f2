// Package speech reads sentences aloud through a system text-to-speech
// engine. Speech is optional: callers treat ErrUnavailable as "stay quiet".
package speech

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrUnavailable is returned when no engine or voice can be used.
var ErrUnavailable = errors.New("speech is not available")

// Voice is a voice offered by an engine.
type Voice struct {
	Name    string
	Lang    string
	Default bool
}

// Engine is a text-to-speech backend.
type Engine interface {
	Voices(ctx context.Context) ([]Voice, error)
	Speak(ctx context.Context, text string, voice Voice) error
}

// normalizeLang turns "en_US" and "EN-us" into "en-us".
func normalizeLang(lang string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "_", "-"))
}

// PickVoice chooses the best voice for English: en-US, then en-GB, then any
// English voice, then the engine default, then the first voice.
func PickVoice(voices []Voice) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}
	for _, want := range []string{"en-us", "en-gb"} {
		for _, v := range voices {
			if normalizeLang(v.Lang) == want {
				return v, true
			}
		}
	}
	for _, v := range voices {
		lang := normalizeLang(v.Lang)
		if lang == "en" || strings.HasPrefix(lang, "en-") {
			return v, true
		}
	}
	for _, v := range voices {
		if v.Default {
			return v, true
		}
	}
	return voices[0], true
}

// VoiceCache asks the engine for its voices once and remembers the pick.
type VoiceCache struct {
	engine Engine

	once  sync.Once
	voice Voice
	err   error
}

// NewVoiceCache creates a cache over engine.
func NewVoiceCache(engine Engine) *VoiceCache {
	return &VoiceCache{engine: engine}
}

// Voice returns the chosen voice, listing voices on first use only.
func (c *VoiceCache) Voice(ctx context.Context) (Voice, error) {
	c.once.Do(func() {
		voices, err := c.engine.Voices(ctx)
		if err != nil {
			c.err = err
			return
		}
		v, ok := PickVoice(voices)
		if !ok {
			c.err = ErrUnavailable
			return
		}
		c.voice = v
	})
	return c.voice, c.err
}

// Speaker speaks text with the cached best voice. A nil *Speaker is valid
// and always returns ErrUnavailable.
type Speaker struct {
	engine Engine
	voices *VoiceCache
}

// NewSpeaker creates a Speaker for engine. A nil engine yields a nil Speaker.
func NewSpeaker(engine Engine) *Speaker {
	if engine == nil {
		return nil
	}
	return &Speaker{engine: engine, voices: NewVoiceCache(engine)}
}

// Say speaks text. Empty text is a no-op.
func (s *Speaker) Say(ctx context.Context, text string) error {
	if s == nil {
		return ErrUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := s.voices.Voice(ctx)
	if err != nil {
		return err
	}
	return s.engine.Speak(ctx, text, v)
}
