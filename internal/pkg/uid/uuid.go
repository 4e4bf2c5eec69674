package uid

import "github.com/google/uuid"

// UUID produces RFC 4122 identifiers, preferring the time-ordered v7 layout.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. When v7 generation fails it falls back
// to a random v4.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
