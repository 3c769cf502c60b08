package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0.75, "45m"},
		{1.0, "1h 0m"},
		{3.433333333, "3h 25m"},
		{24, "24h 0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.hours))
	}
}
