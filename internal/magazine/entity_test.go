package magazine

import (
	"testing"

	"go.velora.shop/internal/catalog"
)

func TestTranslateFallback(t *testing.T) {
	a := &Article{
		Translations: map[catalog.Locale]Translation{
			catalog.LocaleEN: {Title: "English", Body: "..."},
			catalog.LocaleDE: {Title: "Deutsch", Body: "..."},
		},
	}

	if got := a.Translate(catalog.LocaleDE).Title; got != "Deutsch" {
		t.Errorf("Expected exact locale match, got %q", got)
	}
	if got := a.Translate(catalog.LocaleFR).Title; got != "English" {
		t.Errorf("Expected default-locale fallback, got %q", got)
	}
}

func TestTranslateAnyFallback(t *testing.T) {
	a := &Article{
		Translations: map[catalog.Locale]Translation{
			catalog.LocaleDE: {Title: "Deutsch", Body: "..."},
		},
	}

	if got := a.Translate(catalog.LocaleFR).Title; got != "Deutsch" {
		t.Errorf("Expected any-translation fallback, got %q", got)
	}
}

func TestTranslateEmpty(t *testing.T) {
	a := &Article{}
	if got := a.Translate(catalog.LocaleEN); got != (Translation{}) {
		t.Errorf("Expected zero translation, got %+v", got)
	}
}
