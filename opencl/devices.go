package opencl

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Device represents one OpenCL capable device of a Context.
//
// A Device is never created directly: it is obtained from a Context with
// Context.Devices or Context.DeviceByIndex. The Device keeps a non-owning
// reference to its Context and a native id, both set at construction and
// immutable; the Context must outlive the Device.
//
// Capability getters (MaxWorkGroupSize and siblings) query the native layer
// at most once: the first successful result is cached for the lifetime of
// the Device, a failed query is not cached and is retried on the next call.
// The cached fields and the default queue slot are not guarded by a lock:
// a Device instance must not be used from multiple goroutines concurrently
// without external synchronization.
type Device struct {
	ctx *Context
	id  DeviceID

	name       string
	vendor     string
	deviceType DeviceType

	maxWorkGroupSize capability
	maxComputeUnits  capability
	globalMemSize    capability
	localMemSize     capability

	// Lazily created default queue, owned by the device.
	queue *Queue
}

// capability memoizes one device attribute. The explicit queried flag
// distinguishes "never (successfully) queried" from a cached value, so a
// legitimate zero result is never confused with the unset state.
type capability struct {
	value   uint64
	queried bool
}

// newDevice wraps a native device id. Called by Platform.NewContext only.
func newDevice(ctx *Context, id DeviceID) *Device {
	d := &Device{ctx: ctx, id: id}
	var status ErrorCode
	d.name, status = ctx.driver().DeviceInfoString(id, DeviceName)
	if status != Success {
		// Non-fatal
		klog.Errorf("Failed to retrieve name of device %x: %s", uintptr(id), status)
	}
	d.vendor, status = ctx.driver().DeviceInfoString(id, DeviceVendor)
	if status != Success {
		// Non-fatal
		klog.Errorf("Failed to retrieve vendor of device %x: %s", uintptr(id), status)
	}
	var value uint64
	value, status = ctx.driver().DeviceInfoUint64(id, DeviceTypeInfo)
	if status != Success {
		// Non-fatal
		klog.Errorf("Failed to retrieve type of device %x: %s", uintptr(id), status)
	} else {
		d.deviceType = DeviceType(value)
	}
	return d
}

// ID returns the native device id.
func (d *Device) ID() DeviceID { return d.id }

// Context returns the Context the device belongs to. The returned Context
// is not owned by the caller, do not destroy it through this reference.
func (d *Device) Context() *Context { return d.ctx }

// Name returns the device name, e.g. "gfx1030" or "Intel(R) Core(TM) ...".
func (d *Device) Name() string { return d.name }

// Vendor returns the device vendor string.
func (d *Device) Vendor() string { return d.vendor }

// Type returns the device type.
func (d *Device) Type() DeviceType { return d.deviceType }

// IsValid reports whether the device has not been destroyed.
func (d *Device) IsValid() bool {
	return d != nil && d.ctx != nil && d.id != 0
}

// queryCapability returns the slot's value, querying the native layer on
// the first call. On failure nothing is cached and the query is retried on
// the next call.
func (d *Device) queryCapability(slot *capability, param DeviceInfoParam) (uint64, error) {
	if slot.queried {
		return slot.value, nil
	}
	if !d.IsValid() {
		return 0, errors.New("device already destroyed")
	}
	value, status := d.ctx.driver().DeviceInfoUint64(d.id, param)
	if err := toError("clGetDeviceInfo", status); err != nil {
		return 0, errors.WithMessagef(err, "querying device info 0x%04x on %s", uint32(param), d)
	}
	slot.value = value
	slot.queried = true
	return value, nil
}

// MaxWorkGroupSize returns the maximum number of work-items in a work-group
// executing a kernel on the device (CL_DEVICE_MAX_WORK_GROUP_SIZE).
//
// The value is queried from the native layer on the first call and cached;
// upon failure zero is returned along with an error from the OpenCL domain,
// and nothing is cached.
func (d *Device) MaxWorkGroupSize() (uint64, error) {
	return d.queryCapability(&d.maxWorkGroupSize, DeviceMaxWorkGroupSize)
}

// MaxComputeUnits returns the number of parallel compute units of the
// device (CL_DEVICE_MAX_COMPUTE_UNITS). Cached after the first success.
func (d *Device) MaxComputeUnits() (uint64, error) {
	return d.queryCapability(&d.maxComputeUnits, DeviceMaxComputeUnits)
}

// GlobalMemSize returns the size in bytes of the device's global memory
// (CL_DEVICE_GLOBAL_MEM_SIZE). Cached after the first success.
func (d *Device) GlobalMemSize() (uint64, error) {
	return d.queryCapability(&d.globalMemSize, DeviceGlobalMemSize)
}

// LocalMemSize returns the size in bytes of the device's local memory
// (CL_DEVICE_LOCAL_MEM_SIZE). Cached after the first success.
func (d *Device) LocalMemSize() (uint64, error) {
	return d.queryCapability(&d.localMemSize, DeviceLocalMemSize)
}

// DefaultQueue returns the default command queue of the device, creating it
// on the first call. The returned Queue is owned by the device and is
// destroyed with it; do not destroy it directly. More queues for the same
// device can be created with NewQueue.
//
// If creation fails the error is returned, the slot is left empty and the
// next call tries again.
func (d *Device) DefaultQueue() (*Queue, error) {
	if d.queue != nil {
		return d.queue, nil
	}
	queue, err := NewQueue(d, 0)
	if err != nil {
		return nil, errors.WithMessagef(err, "creating default queue for %s", d)
	}
	d.queue = queue
	return queue, nil
}

// Destroy the device and its owned default queue, and drop the reference to
// the owning Context (which is never destroyed through the device). Called
// automatically when the owning Context is destroyed.
func (d *Device) Destroy() error {
	return d.destroy()
}

func (d *Device) destroy() error {
	if d.ctx == nil && d.id == 0 {
		// Already destroyed, no-op.
		return nil
	}
	var err error
	if d.queue != nil {
		err = d.queue.Destroy()
		d.queue = nil
	}
	d.ctx = nil
	d.id = 0
	return err
}

// String implements fmt.Stringer.
func (d *Device) String() string {
	if !d.IsValid() {
		return "Invalid device"
	}
	return fmt.Sprintf("Device[%q, vendor=%q, type=%s]", d.name, d.vendor, d.deviceType)
}
