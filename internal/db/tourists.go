package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Tourist: uczestnik wycieczki, tak jak zapisuje go formularz strony.
type Tourist struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

type TouristList []Tourist

// ParseTourists czyta listę z zamówienia; pusty string = pusta lista.
func ParseTourists(raw string) (TouristList, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return TouristList{}, nil
	}
	var out TouristList
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("tourists: %w", err)
	}
	return out, nil
}

func (l TouristList) Value() (driver.Value, error) {
	if l == nil {
		l = TouristList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TouristList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = TouristList{}
		return nil
	case string:
		return l.parse(v)
	case []byte:
		return l.parse(string(v))
	default:
		return fmt.Errorf("tourists: nieobsługiwany typ kolumny %T", src)
	}
}

func (l *TouristList) parse(raw string) error {
	parsed, err := ParseTourists(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
