package handlers

import (
	"fmt"
	"net/http"

	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/filterbar"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
)

var themes = map[string]bool{
	domain.ThemeLight:  true,
	domain.ThemeDark:   true,
	domain.ThemeSystem: true,
}

// Preferences returns the stored object. Language falls back to the server
// default when unset.
func Preferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs := collectionFor(d, r).RawPreferences(r.Context())
		if _, ok := prefs[domain.PrefLanguage]; !ok && d.DefaultLanguage != "" {
			prefs[domain.PrefLanguage] = d.DefaultLanguage
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

// UpdatePreferences shallow-merges the request object into the stored one.
func UpdatePreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		if err := decodeBody(r, &patch, false); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		patch = plainNumbers(patch)
		if err := validatePreferences(patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_preferences", err.Error())
			return
		}

		store := collectionFor(d, r)
		if err := store.UpdatePreferences(r.Context(), patch); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, store.RawPreferences(r.Context()))
	}
}

func validatePreferences(patch map[string]any) error {
	if v, ok := patch[domain.PrefTheme]; ok {
		theme, _ := v.(string)
		if !themes[theme] {
			return fmt.Errorf("theme must be light, dark or system")
		}
	}

	if v, ok := patch[domain.PrefLanguage]; ok {
		s, _ := v.(string)
		tag, err := language.Parse(s)
		if err != nil {
			return fmt.Errorf("language %q is not a valid tag", s)
		}
		patch[domain.PrefLanguage] = tag.String()
	}

	if v, ok := patch[domain.PrefDefaultFilters]; ok {
		m, isMap := v.(map[string]any)
		if !isMap {
			return fmt.Errorf("%s must be an object", domain.PrefDefaultFilters)
		}
		if err := filterbar.ValidateFilters(m); err != nil {
			return err
		}
	}
	return nil
}
