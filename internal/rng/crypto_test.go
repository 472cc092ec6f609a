package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	c := Crypto{}
	for i := 0; i < 100; i++ {
		n := c.Intn(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
}

func TestSeed(t *testing.T) {
	assert.GreaterOrEqual(t, Seed(), int64(0))
}
