package core

import "github.com/bikecast/bikecast/schema"

// Validate checks that every required field is present in req.
// It stops at the first missing field and does not inspect values.
func Validate(req map[string]any) error {
	for _, field := range schema.RequiredFields {
		if _, ok := req[field]; !ok {
			return &ValidationError{Field: field}
		}
	}
	return nil
}
