//go:build !linux

package device

func Touchscreens() ([]Touchscreen, error) {
	return nil, nil
}

func TouchPrimary() bool {
	return false
}
