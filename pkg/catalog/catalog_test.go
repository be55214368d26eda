package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCarriesAllCodes(t *testing.T) {
	codes := []string{"400", "401", "403", "404", "405", "413", "414", "500", "502", "504", DefaultKey, OfflineKey}
	for _, lang := range Builtin().Languages() {
		for _, code := range codes {
			msg, ok := Builtin().Message(lang, code)
			if !ok {
				t.Fatalf("missing entry for (%s, %s)", lang, code)
			}
			if msg == "" {
				t.Fatalf("empty entry for (%s, %s)", lang, code)
			}
		}
	}
}

func TestEnglish404(t *testing.T) {
	msg, ok := Builtin().Message("en", "404")
	if !ok {
		t.Fatalf("no entry for (en, 404)")
	}
	if msg != "Not Found" {
		t.Fatalf("expected %q, got %q", "Not Found", msg)
	}
}

func TestUnknownLangFallsBack(t *testing.T) {
	got, ok := Builtin().Message("fr", "404")
	if !ok {
		t.Fatalf("fallback lookup failed")
	}
	want, _ := Builtin().Message(FallbackLang, "404")
	if got != want {
		t.Fatalf("expected fallback message %q, got %q", want, got)
	}
}

func TestUnknownCodeNotOK(t *testing.T) {
	if _, ok := Builtin().Message("en", "418"); ok {
		t.Fatalf("expected no entry for unknown code")
	}
}

func TestDefaultAndOffline(t *testing.T) {
	if Builtin().Default("en") == "" {
		t.Fatalf("empty DEFAULT for en")
	}
	if Builtin().Offline("zh-cn") == "" {
		t.Fatalf("empty OFFLINE for zh-cn")
	}
}

func TestMergeDoesNotMutateBuiltin(t *testing.T) {
	before, _ := Builtin().Message("en", "404")

	merged := Builtin().Merge(map[string]map[string]string{
		"en": {"404": "gone missing"},
		"de": {DefaultKey: "Unbekannter Fehler"},
	})

	if got, _ := merged.Message("en", "404"); got != "gone missing" {
		t.Fatalf("override not applied, got %q", got)
	}
	if !merged.Has("de") {
		t.Fatalf("merged catalog missing added language")
	}
	if got, _ := merged.Message("en", "400"); got != "Bad Request" {
		t.Fatalf("untouched entry changed, got %q", got)
	}

	after, _ := Builtin().Message("en", "404")
	if after != before {
		t.Fatalf("builtin mutated: %q -> %q", before, after)
	}
	if Builtin().Has("de") {
		t.Fatalf("builtin gained overlay language")
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	overlay := `messages:
  en:
    "404": "resource missing"
  bn:
    DEFAULT: "কিছু ভুল হয়েছে"
    OFFLINE: "নেটওয়ার্ক বিচ্ছিন্ন"
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cat, err := LoadOverlay(path)
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}
	if got, _ := cat.Message("en", "404"); got != "resource missing" {
		t.Fatalf("override not applied, got %q", got)
	}
	if cat.Default("bn") != "কিছু ভুল হয়েছে" {
		t.Fatalf("added language DEFAULT wrong: %q", cat.Default("bn"))
	}
}

func TestLoadOverlayRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("messages: {}\n"), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := LoadOverlay(path); err == nil {
		t.Fatalf("expected error for empty overlay")
	}
}
