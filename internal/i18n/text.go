// internal/i18n/text.go
package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
)

// Default to język strony, gdy nic innego nie pasuje.
const Default = RU

// ParseLang mapuje tag językowy (np. "en-US", "ru_RU") na obsługiwany język.
func ParseLang(tag string) Lang {
	t := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(t, "en"):
		return EN
	case strings.HasPrefix(t, "ru"):
		return RU
	default:
		return Default
	}
}

// Text to dwujęzyczna wartość trzymana w bazie jako {"en": "...", "ru": "..."}.
type Text struct {
	En string `json:"en"`
	Ru string `json:"ru"`
}

// Get zwraca tekst w danym języku, a gdy go brak, w drugim.
func (t Text) Get(lang Lang) string {
	primary, fallback := t.Ru, t.En
	if lang == EN {
		primary, fallback = t.En, t.Ru
	}
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return fallback
}

func (t Text) IsZero() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Ru) == ""
}

func (t Text) String() string { return t.Get(Default) }

// Parse akceptuje obiekt JSON albo zwykły string (wtedy ten sam tekst w obu językach).
func Parse(raw string) (Text, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Text{}, nil
	}
	if !strings.HasPrefix(s, "{") {
		// stare rekordy: "\"Тур\"" albo po prostu Тур
		var plain string
		if strings.HasPrefix(s, `"`) && json.Unmarshal([]byte(s), &plain) == nil {
			return Text{En: plain, Ru: plain}, nil
		}
		return Text{En: s, Ru: s}, nil
	}
	var t Text
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return Text{}, fmt.Errorf("i18n: niepoprawny JSON tekstu: %w", err)
	}
	return t, nil
}

// MustJSON zwraca zserializowaną postać (do seedów i logów).
func (t Text) MustJSON() string {
	b, _ := json.Marshal(t)
	return string(b)
}

// Scan implementuje sql.Scanner.
func (t *Text) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = Text{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("i18n: nieobsługiwany typ kolumny %T", src)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implementuje driver.Valuer.
func (t Text) Value() (driver.Value, error) {
	return t.MustJSON(), nil
}

func (Text) GormDataType() string { return "text" }
