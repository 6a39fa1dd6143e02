package backend

import (
	"errors"

	"github.com/gogpu/hwlayer/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory opens a texture driver. The returned function releases whatever
// the driver was opened on; it is never nil when err is nil.
//
// Factories are registered via Register() and selected via Open() or
// OpenDefault().
type Factory func() (gpucore.Driver, func(), error)
