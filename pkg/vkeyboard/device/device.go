// Package device answers whether the keyboard should attach on this machine.
package device

import (
	"strconv"
	"strings"
)

// ShouldAttach reports whether a keyboard binding is allowed. On touch-primary
// devices bindings are suppressed unless override parses as true.
func ShouldAttach(touchPrimary bool, override string) bool {
	if !touchPrimary {
		return true
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(override))
	return err == nil && enabled
}

// Touchscreen describes an input device that reports direct touch.
type Touchscreen struct {
	Name string
	Path string
}
