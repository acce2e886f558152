package catalog

import "testing"

func TestTranslateFallsBackToDefaultLocale(t *testing.T) {
	p := &Product{
		Translations: map[Locale]Translation{
			LocaleEN: {Name: "Wool Scarf"},
			LocaleDE: {Name: "Wollschal"},
		},
	}

	if got := p.Translate(LocaleDE).Name; got != "Wollschal" {
		t.Errorf("Expected DE translation, got %q", got)
	}
	if got := p.Translate(LocaleFR).Name; got != "Wool Scarf" {
		t.Errorf("Expected fallback to default locale, got %q", got)
	}
}

func TestTranslateAnyLocaleWhenDefaultMissing(t *testing.T) {
	p := &Product{
		Translations: map[Locale]Translation{
			LocaleFR: {Name: "Écharpe en laine"},
		},
	}

	if got := p.Translate(LocaleEN).Name; got != "Écharpe en laine" {
		t.Errorf("Expected any available translation, got %q", got)
	}
}

func TestInStock(t *testing.T) {
	p := &Product{Stock: 3}

	if !p.InStock(3) {
		t.Error("Expected 3 units to be available")
	}
	if p.InStock(4) {
		t.Error("Expected 4 units to be unavailable")
	}
}
