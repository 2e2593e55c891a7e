package utils

import (
	"github.com/google/uuid"
)

// ==================== SESSION & KEYS ====================

func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateIdempotencyKey returns a fresh key for one payment attempt.
func GenerateIdempotencyKey() string {
	return "pay-" + uuid.New().String()
}

func IsValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
