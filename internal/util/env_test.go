package util

import (
	"os"
	"testing"

	"github.com/bmizerany/assert"
)

func TestGetenv(t *testing.T) {
	_ = os.Setenv("__UTIL_TEST", "")
	assert.Equal(t, "default", Getenv("__UTIL_TEST", "default"))

	_ = os.Setenv("__UTIL_TEST", "value")
	assert.Equal(t, "value", Getenv("__UTIL_TEST", "default"))
	_ = os.Unsetenv("__UTIL_TEST")
}
