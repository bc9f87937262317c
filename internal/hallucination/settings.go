package hallucination

import (
	"errors"
	"fmt"
)

// MinRepetitionThreshold is the smallest run length that can be collapsed.
const MinRepetitionThreshold = 2

// DefaultRepetitionThreshold is the run length used by DefaultSettings.
const DefaultRepetitionThreshold = 3

// ErrInvalidThreshold reports a repetition threshold below MinRepetitionThreshold.
var ErrInvalidThreshold = errors.New("repetition threshold must be at least 2")

// Settings selects which filters Clean applies. A Settings value is copied
// into every call; nothing retains it.
type Settings struct {
	Enabled             bool
	FilterYouTube       bool
	FilterMarkers       bool
	FilterCredits       bool
	FilterRepetition    bool
	RepetitionThreshold int
}

// DefaultSettings enables every category and repetition collapsing.
func DefaultSettings() Settings {
	return Settings{
		Enabled:             true,
		FilterYouTube:       true,
		FilterMarkers:       true,
		FilterCredits:       true,
		FilterRepetition:    true,
		RepetitionThreshold: DefaultRepetitionThreshold,
	}
}

// SettingsOption adjusts a Settings value built by NewSettings.
type SettingsOption func(*Settings)

// WithEnabled toggles the whole filter.
func WithEnabled(enabled bool) SettingsOption {
	return func(s *Settings) { s.Enabled = enabled }
}

// WithCategory toggles a single pattern category.
func WithCategory(c Category, enabled bool) SettingsOption {
	return func(s *Settings) {
		switch c {
		case CategoryYouTube:
			s.FilterYouTube = enabled
		case CategoryMarkers:
			s.FilterMarkers = enabled
		case CategoryCredits:
			s.FilterCredits = enabled
		}
	}
}

// WithRepetition toggles repetition collapsing and sets its threshold.
func WithRepetition(enabled bool, threshold int) SettingsOption {
	return func(s *Settings) {
		s.FilterRepetition = enabled
		s.RepetitionThreshold = threshold
	}
}

// NewSettings applies opts on top of DefaultSettings and validates the result.
func NewSettings(opts ...SettingsOption) (Settings, error) {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate ensures the settings are usable.
func (s Settings) Validate() error {
	if s.RepetitionThreshold < MinRepetitionThreshold {
		return fmt.Errorf("%w (got %d)", ErrInvalidThreshold, s.RepetitionThreshold)
	}
	return nil
}

// CategoryEnabled reports whether patterns of category c should run.
func (s Settings) CategoryEnabled(c Category) bool {
	switch c {
	case CategoryYouTube:
		return s.FilterYouTube
	case CategoryMarkers:
		return s.FilterMarkers
	case CategoryCredits:
		return s.FilterCredits
	default:
		return false
	}
}
