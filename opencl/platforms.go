package opencl

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Platform represents one native OpenCL platform (an installed driver, e.g.
// one vendor's implementation). Platforms are enumerated once and cached:
// Platforms returns pointers to the same objects on every call.
type Platform struct {
	driver clDriver
	id     PlatformID

	name       string
	vendor     string
	version    string
	profile    string
	extensions string
}

var (
	// loadedPlatforms caches the result of the first successful enumeration.
	// Protected by muPlatforms.
	loadedPlatforms []*Platform
	muPlatforms     sync.Mutex
)

// Platforms enumerates the available OpenCL platforms.
//
// The native enumeration happens only once; subsequent calls return the
// cached list. It uses a mutex to serialize (make it safe) calls from
// different goroutines.
func Platforms() ([]*Platform, error) {
	muPlatforms.Lock()
	defer muPlatforms.Unlock()
	if loadedPlatforms != nil {
		return loadedPlatforms, nil
	}

	driver, err := newDriver()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize the OpenCL driver")
	}
	ids, status := driver.PlatformIDs()
	if err := toError("clGetPlatformIDs", status); err != nil {
		return nil, err
	}
	platforms := make([]*Platform, len(ids))
	for ii, id := range ids {
		platforms[ii] = newPlatform(driver, id)
	}
	loadedPlatforms = platforms
	return platforms, nil
}

// DefaultPlatform returns the first available platform.
func DefaultPlatform() (*Platform, error) {
	platforms, err := Platforms()
	if err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available: check installed drivers with AvailableDrivers()")
	}
	return platforms[0], nil
}

// newPlatform wraps a native platform id. Not all attribute queries are
// fatal to the construction of the Platform.
func newPlatform(driver clDriver, id PlatformID) *Platform {
	p := &Platform{driver: driver, id: id}
	for _, attr := range []struct {
		param PlatformInfoParam
		dst   *string
	}{
		{PlatformName, &p.name},
		{PlatformVendor, &p.vendor},
		{PlatformVersion, &p.version},
		{PlatformProfile, &p.profile},
		{PlatformExtensions, &p.extensions},
	} {
		value, status := driver.PlatformInfo(id, attr.param)
		if status != Success {
			// Non-fatal
			klog.Errorf("Failed to retrieve platform attribute 0x%04x for platform %x: %s", uint32(attr.param), uintptr(id), status)
			continue
		}
		*attr.dst = value
	}
	return p
}

// ID returns the native platform id.
func (p *Platform) ID() PlatformID { return p.id }

// Name returns the platform name, e.g. "NVIDIA CUDA" or "Portable Computing Language".
func (p *Platform) Name() string { return p.name }

// Vendor returns the platform vendor string.
func (p *Platform) Vendor() string { return p.vendor }

// Version returns the OpenCL version string of the platform.
func (p *Platform) Version() string { return p.version }

// Profile returns "FULL_PROFILE" or "EMBEDDED_PROFILE".
func (p *Platform) Profile() string { return p.profile }

// Extensions returns the space-separated platform extension names.
func (p *Platform) Extensions() string { return p.extensions }

// String implements fmt.Stringer.
func (p *Platform) String() string {
	return fmt.Sprintf("Platform[%q, vendor=%q, %s]", p.name, p.vendor, p.version)
}
