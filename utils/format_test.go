package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "1:05", FormatCountdown(65*time.Second))
	assert.Equal(t, "0:30", FormatCountdown(30*time.Second))
	assert.Equal(t, "0:00", FormatCountdown(0))
	assert.Equal(t, "0:00", FormatCountdown(-3*time.Second), "never negative")
	assert.Equal(t, "10:00", FormatCountdown(10*time.Minute))
}
