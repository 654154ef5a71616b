package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldAttach(t *testing.T) {
	tests := []struct {
		name         string
		touchPrimary bool
		override     string
		want         bool
	}{
		{"desktop without override", false, "", true},
		{"desktop with false override", false, "false", true},
		{"touch without override", true, "", false},
		{"touch with true", true, "true", true},
		{"touch with 1", true, "1", true},
		{"touch with padded TRUE", true, " TRUE ", true},
		{"touch with false", true, "false", false},
		{"touch with yes", true, "yes", false},
		{"touch with garbage", true, "show-in-mobile", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAttach(tt.touchPrimary, tt.override))
		})
	}
}

func TestTouchPrimary_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { TouchPrimary() })
}
