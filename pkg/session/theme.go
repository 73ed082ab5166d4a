package session

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ThemeName is the go-theme name the application renders with.
const ThemeName = "chanterelle"

// Preference is the user's theme choice.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// ParsePreference accepts light, dark or system; empty means system.
func ParsePreference(raw string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(raw))) {
	case PreferenceLight:
		return PreferenceLight, nil
	case PreferenceDark:
		return PreferenceDark, nil
	case PreferenceSystem, "":
		return PreferenceSystem, nil
	default:
		return "", fmt.Errorf("session: unknown theme preference %q", raw)
	}
}

// Theme owns the theme preference. The optional persist hook runs on every
// change while the lock is held so stored and live values never diverge.
type Theme struct {
	mu         sync.RWMutex
	preference Preference
	persist    func(Preference) error
}

// NewTheme seeds the preference. persist may be nil.
func NewTheme(initial Preference, persist func(Preference) error) *Theme {
	if initial == "" {
		initial = PreferenceSystem
	}
	return &Theme{preference: initial, persist: persist}
}

// Preference returns the stored choice.
func (t *Theme) Preference() Preference {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.preference
}

// Set stores a new preference.
func (t *Theme) Set(pref Preference) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.persist != nil {
		if err := t.persist(pref); err != nil {
			return fmt.Errorf("session: persist theme: %w", err)
		}
	}
	t.preference = pref
	return nil
}

// Toggle flips between light and dark. From system it moves to the opposite
// of resolved, the variant the client currently shows.
func (t *Theme) Toggle(resolved Preference) (Preference, error) {
	next := PreferenceDark
	switch t.Preference() {
	case PreferenceDark:
		next = PreferenceLight
	case PreferenceSystem:
		if resolved == PreferenceDark {
			next = PreferenceLight
		}
	}
	return next, t.Set(next)
}

// RendererConfig exposes the preference as a go-theme renderer config. The
// system variant leaves the choice to the client's colour-scheme media query.
func (t *Theme) RendererConfig() *theme.RendererConfig {
	pref := t.Preference()
	cfg := &theme.RendererConfig{
		Theme:   ThemeName,
		Variant: string(pref),
		Tokens: map[string]string{
			"accent":  "#1976d2",
			"surface": "#ffffff",
			"text":    "#1e293b",
		},
	}
	if pref == PreferenceDark {
		cfg.Tokens["surface"] = "#1e293b"
		cfg.Tokens["text"] = "#e2e8f0"
	}
	cfg.CSSVars = map[string]string{
		"--ch-accent":  cfg.Tokens["accent"],
		"--ch-surface": cfg.Tokens["surface"],
		"--ch-text":    cfg.Tokens["text"],
	}
	return cfg
}
