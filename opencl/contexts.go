package opencl

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Context wraps a native cl_context created over all devices of one type on
// a platform. It constructs and owns its Device objects: destroying the
// Context destroys every Device it produced (and transitively their default
// queues). A Context must outlive every Device it produced.
type Context struct {
	platform   *Platform
	id         ContextID
	deviceType DeviceType
	devices    []*Device
}

// NewContext creates a context over all devices of the given type available
// on the platform.
func (p *Platform) NewContext(deviceType DeviceType) (*Context, error) {
	ids, status := p.driver.DeviceIDs(p.id, deviceType)
	if err := toError("clGetDeviceIDs", status); err != nil {
		return nil, errors.WithMessagef(err, "enumerating %s devices on %s", deviceType, p)
	}
	if len(ids) == 0 {
		return nil, toError("clGetDeviceIDs", DeviceNotFound)
	}
	ctxID, status := p.driver.CreateContext(p.id, ids)
	if err := toError("clCreateContext", status); err != nil {
		return nil, errors.WithMessagef(err, "creating %s context on %s", deviceType, p)
	}

	c := &Context{platform: p, id: ctxID, deviceType: deviceType}
	c.devices = make([]*Device, len(ids))
	for ii, deviceID := range ids {
		c.devices[ii] = newDevice(c, deviceID)
	}
	runtime.SetFinalizer(c, finalizeContext)
	return c, nil
}

// NewGPUContext creates a context over the GPU devices of the default
// platform.
func NewGPUContext() (*Context, error) {
	return newDefaultContext(DeviceTypeGPU)
}

// NewCPUContext creates a context over the CPU devices of the default
// platform.
func NewCPUContext() (*Context, error) {
	return newDefaultContext(DeviceTypeCPU)
}

func newDefaultContext(deviceType DeviceType) (*Context, error) {
	p, err := DefaultPlatform()
	if err != nil {
		return nil, err
	}
	return p.NewContext(deviceType)
}

func finalizeContext(c *Context) {
	err := c.Destroy()
	if err != nil {
		klog.Errorf("Context.Destroy failed: %v", err)
	}
}

func (c *Context) driver() clDriver {
	return c.platform.driver
}

// Platform returns the platform the context was created on.
func (c *Context) Platform() *Platform {
	return c.platform
}

// NumDevices returns the number of devices in the context.
func (c *Context) NumDevices() int {
	return len(c.devices)
}

// Devices returns the devices of the context. The returned slice is owned by
// the Context, do not modify.
func (c *Context) Devices() []*Device {
	return c.devices
}

// DeviceByIndex returns the idx-th device of the context.
func (c *Context) DeviceByIndex(idx int) (*Device, error) {
	if idx < 0 || idx >= len(c.devices) {
		return nil, errors.Errorf("device index %d out of range, context has %d device(s)", idx, len(c.devices))
	}
	return c.devices[idx], nil
}

// Destroy the context, its devices and their owned queues. The Context is no
// longer valid afterwards. This is automatically called if the Context is
// garbage collected.
func (c *Context) Destroy() error {
	if c.platform == nil || c.id == 0 {
		// Already destroyed, no-op.
		return nil
	}
	defer runtime.KeepAlive(c)
	var firstErr error
	for _, device := range c.devices {
		if err := device.destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	status := c.driver().ReleaseContext(c.id)
	if err := toError("clReleaseContext", status); err != nil && firstErr == nil {
		firstErr = err
	}
	c.platform = nil
	c.id = 0
	c.devices = nil
	return firstErr
}

// String implements fmt.Stringer.
func (c *Context) String() string {
	if c.id == 0 {
		return "Invalid context"
	}
	return fmt.Sprintf("Context[%s on %q, %d device(s)]", c.deviceType, c.platform.Name(), len(c.devices))
}
