package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/codr1/nyxxdocs/internal/theme"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ParseBoolField treats an empty value as false.
func ParseBoolField(raw string, field string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, FieldError{Field: field, Reason: "must be true or false"}
	}
	return value, nil
}

func ParseModeField(raw string, field string) (theme.Mode, error) {
	mode, ok := theme.ParseModeLoose(raw)
	if !ok {
		return theme.DefaultMode, FieldError{Field: field, Reason: "must be dark or light"}
	}
	return mode, nil
}

// QueryMode reads an optional theme override from the query string.
func QueryMode(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	mode, err := ParseModeField(raw, key)
	if err != nil {
		return nil, err
	}
	light := mode.IsLight()
	return &light, nil
}
