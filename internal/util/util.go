package util

import (
	"github.com/google/uuid"
)

// RandomEmail returns a unique email address for test fixtures
func RandomEmail() string {
	return uuid.New().String() + "@blackjack.test"
}
