package core

import "github.com/google/uuid"

// NewID generates a stable unique identifier for a collection or endpoint.
func NewID() string {
	return uuid.NewString()
}
