package collection

import (
	"context"
	"encoding/json"
	"errors"
	"maps"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

// RawPreferences returns the stored preferences object as-is.
// Unreadable storage yields an empty map.
func (s *Store) RawPreferences(ctx context.Context) map[string]any {
	prefs, err := s.loadPreferences(ctx)
	if err != nil {
		s.log.Warn("preferences unreadable, returning empty", logger.Error(err))
		return map[string]any{}
	}
	return prefs
}

// Preferences returns the typed view of the stored preferences.
func (s *Store) Preferences(ctx context.Context) domain.Preferences {
	raw := s.RawPreferences(ctx)

	// round-trip through JSON so wrongly typed fields are simply dropped
	var p domain.Preferences
	data, err := json.Marshal(raw)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Debug("preferences do not match typed view", logger.Error(err))
		if theme, ok := raw[domain.PrefTheme].(string); ok {
			p.Theme = theme
		}
		if lang, ok := raw[domain.PrefLanguage].(string); ok {
			p.Language = lang
		}
	}
	return p
}

// UpdatePreferences shallow-merges patch into the stored object: top-level
// keys in patch replace existing ones, everything else is kept.
func (s *Store) UpdatePreferences(ctx context.Context, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadPreferences(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return s.writeFailed("update preferences", err)
		}
		s.log.Warn("preferences corrupt, starting over", logger.Error(err))
		current = map[string]any{}
	}

	maps.Copy(current, patch)

	if err := s.save(ctx, KeyPreferences, current); err != nil {
		return s.writeFailed("update preferences", err)
	}
	return nil
}

func (s *Store) loadPreferences(ctx context.Context) (map[string]any, error) {
	var prefs map[string]any
	if err := s.load(ctx, KeyPreferences, &prefs); err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = map[string]any{}
	}
	return prefs, nil
}
