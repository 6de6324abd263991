package utils

import "github.com/google/uuid"

// UUIDGenerator issues note identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a random (version 4) UUID string.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
