package models

import "fmt"

// IdeaDraft is the value object returned by the generation capability before
// an id or timestamp exists. All four fields are required.
type IdeaDraft struct {
	Title       string
	Description string
	Genre       string
	Platform    string
}

// Validate checks that every required field is present and non-empty.
// A draft failing validation means the external response did not satisfy the
// schema contract — a permanent error, not a retryable one.
func (d IdeaDraft) Validate() error {
	for field, value := range map[string]string{
		"title":       d.Title,
		"description": d.Description,
		"genre":       d.Genre,
		"platform":    d.Platform,
	} {
		if value == "" {
			return fmt.Errorf("draft field %q is empty", field)
		}
	}
	return nil
}
