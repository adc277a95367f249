package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for new outbox rows and entities.
// Version 7 UUIDs are time-ordered, which keeps insertion order readable
// in the local database.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
