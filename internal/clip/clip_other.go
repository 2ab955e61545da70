//go:build !darwin && !windows && !linux

package clip

import (
	"fmt"
	"runtime"
)

// New always fails on platforms without a supported clipboard.
func New() (Backend, error) {
	return nil, fmt.Errorf("%w: %s is not supported", ErrUnavailable, runtime.GOOS)
}
