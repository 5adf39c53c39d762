package dtos

import (
	"bytes"
	"encoding/json"
	"strconv"

	"acme-ice-cream/flavors/internal/models/entities"
)

// FlavorRequest is the typed body of POST /api/flavors and
// PUT /api/flavors/{id}, decoded in strict mode. Both fields are optional;
// absent fields are written as defaults.
type FlavorRequest struct {
	Name       *string `json:"name"`
	IsFavorite *bool   `json:"is_favorite"`
}

func (r FlavorRequest) ToInput() entities.FlavorInput {
	in := entities.FlavorInput{Name: r.Name}
	if r.IsFavorite != nil {
		v := strconv.FormatBool(*r.IsFavorite)
		in.IsFavorite = &v
	}
	return in
}

// RawFlavorRequest is the same body decoded in permissive mode. Values of
// any JSON type are kept and handed to the database as text.
type RawFlavorRequest struct {
	Name       json.RawMessage `json:"name"`
	IsFavorite json.RawMessage `json:"is_favorite"`
}

func (r RawFlavorRequest) ToInput() entities.FlavorInput {
	return entities.FlavorInput{
		Name:       jsonText(r.Name),
		IsFavorite: jsonText(r.IsFavorite),
	}
}

// jsonText renders a JSON value as a query parameter: strings lose their
// quotes, null and absent become nil, anything else keeps its JSON text.
func jsonText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		s := string(raw)
		return &s
	}
	s := buf.String()
	return &s
}
