//go:build !opencl

package opencl

import "github.com/pkg/errors"

// ErrNotBuilt indicates the binary was built without OpenCL support.
var ErrNotBuilt = errors.New("OpenCL support requires building with '-tags opencl' (links against libOpenCL)")

func newDriver() (clDriver, error) {
	return nil, ErrNotBuilt
}
