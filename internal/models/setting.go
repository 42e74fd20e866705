package models

import "time"

// Setting is one key/value pair in the site settings store. Values are
// stored as strings and deserialized at the edge (see internal/settings).
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
