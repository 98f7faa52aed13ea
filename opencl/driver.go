package opencl

// This file defines the surface of the native OpenCL entry points used by
// the wrapper objects. The cgo implementation lives in driver_cgo.go (build
// tag "opencl"); driver_stub.go provides the fallback used when OpenCL is
// not linked in. Tests inject their own counting implementation.

// Opaque handles to native objects. They are never dereferenced on the Go
// side, only passed back to the driver.
type (
	// PlatformID identifies a native cl_platform_id.
	PlatformID uintptr

	// DeviceID identifies a native cl_device_id.
	DeviceID uintptr

	// ContextID identifies a native cl_context.
	ContextID uintptr

	// QueueID identifies a native cl_command_queue.
	QueueID uintptr

	// MemID identifies a native cl_mem.
	MemID uintptr
)

// DeviceType selects a class of devices when creating a Context.
// Values match the cl_device_type bitfield.
type DeviceType uint64

const (
	DeviceTypeDefault     DeviceType = 1 << 0
	DeviceTypeCPU         DeviceType = 1 << 1
	DeviceTypeGPU         DeviceType = 1 << 2
	DeviceTypeAccelerator DeviceType = 1 << 3
	DeviceTypeAll         DeviceType = 0xFFFFFFFF
)

// String implements fmt.Stringer.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeDefault:
		return "default"
	case DeviceTypeCPU:
		return "cpu"
	case DeviceTypeGPU:
		return "gpu"
	case DeviceTypeAccelerator:
		return "accelerator"
	case DeviceTypeAll:
		return "all"
	}
	return "unknown"
}

// PlatformInfoParam selects a cl_platform_info string attribute.
type PlatformInfoParam uint32

const (
	PlatformProfile    PlatformInfoParam = 0x0900
	PlatformVersion    PlatformInfoParam = 0x0901
	PlatformName       PlatformInfoParam = 0x0902
	PlatformVendor     PlatformInfoParam = 0x0903
	PlatformExtensions PlatformInfoParam = 0x0904
)

// DeviceInfoParam selects a cl_device_info attribute.
type DeviceInfoParam uint32

const (
	DeviceTypeInfo         DeviceInfoParam = 0x1000
	DeviceVendorID         DeviceInfoParam = 0x1001
	DeviceMaxComputeUnits  DeviceInfoParam = 0x1002
	DeviceMaxWorkItemDims  DeviceInfoParam = 0x1003
	DeviceMaxWorkGroupSize DeviceInfoParam = 0x1004
	DeviceGlobalMemSize    DeviceInfoParam = 0x101F
	DeviceLocalMemSize     DeviceInfoParam = 0x1023
	DeviceName             DeviceInfoParam = 0x102B
	DeviceVendor           DeviceInfoParam = 0x102C
	DriverVersion          DeviceInfoParam = 0x102D
	DeviceProfile          DeviceInfoParam = 0x102E
	DeviceVersion          DeviceInfoParam = 0x102F
	DeviceExtensions       DeviceInfoParam = 0x1030
)

// MemFlags configure buffer and image allocation, matching cl_mem_flags.
type MemFlags uint64

const (
	MemReadWrite    MemFlags = 1 << 0
	MemWriteOnly    MemFlags = 1 << 1
	MemReadOnly     MemFlags = 1 << 2
	MemUseHostPtr   MemFlags = 1 << 3
	MemAllocHostPtr MemFlags = 1 << 4
	MemCopyHostPtr  MemFlags = 1 << 5
)

// QueueProperties configure command queue creation, matching
// cl_command_queue_properties.
type QueueProperties uint64

const (
	QueueOutOfOrderExec QueueProperties = 1 << 0
	QueueProfiling      QueueProperties = 1 << 1
)

// clDriver is the set of native entry points the wrapper objects call into.
// Every method maps to one OpenCL C call and returns its raw status code;
// conversion to Go errors happens in the callers, with toError.
type clDriver interface {
	PlatformIDs() ([]PlatformID, ErrorCode)
	PlatformInfo(p PlatformID, param PlatformInfoParam) (string, ErrorCode)

	DeviceIDs(p PlatformID, deviceType DeviceType) ([]DeviceID, ErrorCode)
	DeviceInfoString(d DeviceID, param DeviceInfoParam) (string, ErrorCode)
	DeviceInfoUint64(d DeviceID, param DeviceInfoParam) (uint64, ErrorCode)

	CreateContext(p PlatformID, devices []DeviceID) (ContextID, ErrorCode)
	ReleaseContext(ctx ContextID) ErrorCode

	CreateQueue(ctx ContextID, d DeviceID, props QueueProperties) (QueueID, ErrorCode)
	ReleaseQueue(q QueueID) ErrorCode
	FlushQueue(q QueueID) ErrorCode
	FinishQueue(q QueueID) ErrorCode

	CreateBuffer(ctx ContextID, flags MemFlags, size int) (MemID, ErrorCode)
	CreateImage(ctx ContextID, flags MemFlags, format ImageFormat, desc ImageDesc) (MemID, ErrorCode)
	ReleaseMem(m MemID) ErrorCode

	ReadBuffer(q QueueID, m MemID, offset int, dst []byte) ErrorCode
	WriteBuffer(q QueueID, m MemID, offset int, src []byte) ErrorCode
}
