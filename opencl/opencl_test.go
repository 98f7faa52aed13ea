package opencl

// Common initialization and testing tools for all test files: a fakeDriver
// implementing clDriver in memory, with per-entry-point call counters and
// programmable failures.

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

const testPlatformID = PlatformID(0x10)

// fakeDriver is an in-memory clDriver with one platform. Every method
// increments its call counter; failures can be forced per entry point.
type fakeDriver struct {
	platformInfos map[PlatformInfoParam]string
	devices       []DeviceID
	deviceStrings map[DeviceID]map[DeviceInfoParam]string
	deviceUints   map[DeviceID]map[DeviceInfoParam]uint64

	// fail forces the named methods to return the given status.
	fail map[string]ErrorCode

	// calls counts invocations per method name.
	calls map[string]int

	// released records every released handle, in order.
	released []string

	// buffers holds the contents of live buffers.
	buffers map[MemID][]byte

	nextHandle uintptr
}

func newFakeDriver() *fakeDriver {
	f := &fakeDriver{
		platformInfos: map[PlatformInfoParam]string{
			PlatformName:    "Fake Platform",
			PlatformVendor:  "gocl",
			PlatformVersion: "OpenCL 1.2 fake",
			PlatformProfile: "FULL_PROFILE",
		},
		deviceStrings: make(map[DeviceID]map[DeviceInfoParam]string),
		deviceUints:   make(map[DeviceID]map[DeviceInfoParam]uint64),
		fail:          make(map[string]ErrorCode),
		calls:         make(map[string]int),
		buffers:       make(map[MemID][]byte),
		nextHandle:    0x1000,
	}
	f.addDevice("Fake GPU 0", 256)
	f.addDevice("Fake GPU 1", 1024)
	return f
}

func (f *fakeDriver) addDevice(name string, maxWorkGroupSize uint64) DeviceID {
	id := DeviceID(f.handle())
	f.devices = append(f.devices, id)
	f.deviceStrings[id] = map[DeviceInfoParam]string{
		DeviceName:   name,
		DeviceVendor: "gocl",
	}
	f.deviceUints[id] = map[DeviceInfoParam]uint64{
		DeviceTypeInfo:         uint64(DeviceTypeGPU),
		DeviceMaxWorkGroupSize: maxWorkGroupSize,
		DeviceMaxComputeUnits:  32,
		DeviceGlobalMemSize:    8 << 30,
		DeviceLocalMemSize:     64 << 10,
	}
	return id
}

func (f *fakeDriver) handle() uintptr {
	f.nextHandle += 0x10
	return f.nextHandle
}

func (f *fakeDriver) enter(method string) ErrorCode {
	f.calls[method]++
	if status, found := f.fail[method]; found {
		return status
	}
	return Success
}

// failWith forces method to fail with status until clearFail.
func (f *fakeDriver) failWith(method string, status ErrorCode) {
	f.fail[method] = status
}

func (f *fakeDriver) clearFail(method string) {
	delete(f.fail, method)
}

func (f *fakeDriver) PlatformIDs() ([]PlatformID, ErrorCode) {
	if status := f.enter("PlatformIDs"); status != Success {
		return nil, status
	}
	return []PlatformID{testPlatformID}, Success
}

func (f *fakeDriver) PlatformInfo(p PlatformID, param PlatformInfoParam) (string, ErrorCode) {
	if status := f.enter("PlatformInfo"); status != Success {
		return "", status
	}
	if p != testPlatformID {
		return "", InvalidPlatform
	}
	return f.platformInfos[param], Success
}

func (f *fakeDriver) DeviceIDs(p PlatformID, deviceType DeviceType) ([]DeviceID, ErrorCode) {
	if status := f.enter("DeviceIDs"); status != Success {
		return nil, status
	}
	if p != testPlatformID {
		return nil, InvalidPlatform
	}
	if deviceType&(DeviceTypeGPU|DeviceTypeDefault) == 0 && deviceType != DeviceTypeAll {
		return nil, DeviceNotFound
	}
	return append([]DeviceID{}, f.devices...), Success
}

func (f *fakeDriver) DeviceInfoString(d DeviceID, param DeviceInfoParam) (string, ErrorCode) {
	if status := f.enter("DeviceInfoString"); status != Success {
		return "", status
	}
	infos, found := f.deviceStrings[d]
	if !found {
		return "", InvalidDevice
	}
	return infos[param], Success
}

func (f *fakeDriver) DeviceInfoUint64(d DeviceID, param DeviceInfoParam) (uint64, ErrorCode) {
	if status := f.enter("DeviceInfoUint64"); status != Success {
		return 0, status
	}
	infos, found := f.deviceUints[d]
	if !found {
		return 0, InvalidDevice
	}
	value, found := infos[param]
	if !found {
		return 0, InvalidValue
	}
	return value, Success
}

func (f *fakeDriver) CreateContext(p PlatformID, devices []DeviceID) (ContextID, ErrorCode) {
	if status := f.enter("CreateContext"); status != Success {
		return 0, status
	}
	if p != testPlatformID || len(devices) == 0 {
		return 0, InvalidValue
	}
	return ContextID(f.handle()), Success
}

func (f *fakeDriver) ReleaseContext(ctx ContextID) ErrorCode {
	if status := f.enter("ReleaseContext"); status != Success {
		return status
	}
	f.released = append(f.released, fmt.Sprintf("context:%x", uintptr(ctx)))
	return Success
}

func (f *fakeDriver) CreateQueue(ctx ContextID, d DeviceID, props QueueProperties) (QueueID, ErrorCode) {
	if status := f.enter("CreateQueue"); status != Success {
		return 0, status
	}
	if _, found := f.deviceUints[d]; !found {
		return 0, InvalidDevice
	}
	return QueueID(f.handle()), Success
}

func (f *fakeDriver) ReleaseQueue(q QueueID) ErrorCode {
	if status := f.enter("ReleaseQueue"); status != Success {
		return status
	}
	f.released = append(f.released, fmt.Sprintf("queue:%x", uintptr(q)))
	return Success
}

func (f *fakeDriver) FlushQueue(q QueueID) ErrorCode {
	return f.enter("FlushQueue")
}

func (f *fakeDriver) FinishQueue(q QueueID) ErrorCode {
	return f.enter("FinishQueue")
}

func (f *fakeDriver) CreateBuffer(ctx ContextID, flags MemFlags, size int) (MemID, ErrorCode) {
	if status := f.enter("CreateBuffer"); status != Success {
		return 0, status
	}
	id := MemID(f.handle())
	f.buffers[id] = make([]byte, size)
	return id, Success
}

func (f *fakeDriver) CreateImage(ctx ContextID, flags MemFlags, format ImageFormat, desc ImageDesc) (MemID, ErrorCode) {
	if status := f.enter("CreateImage"); status != Success {
		return 0, status
	}
	return MemID(f.handle()), Success
}

func (f *fakeDriver) ReleaseMem(m MemID) ErrorCode {
	if status := f.enter("ReleaseMem"); status != Success {
		return status
	}
	delete(f.buffers, m)
	f.released = append(f.released, fmt.Sprintf("mem:%x", uintptr(m)))
	return Success
}

func (f *fakeDriver) ReadBuffer(q QueueID, m MemID, offset int, dst []byte) ErrorCode {
	if status := f.enter("ReadBuffer"); status != Success {
		return status
	}
	contents, found := f.buffers[m]
	if !found {
		return InvalidMemObject
	}
	copy(dst, contents[offset:])
	return Success
}

func (f *fakeDriver) WriteBuffer(q QueueID, m MemID, offset int, src []byte) ErrorCode {
	if status := f.enter("WriteBuffer"); status != Success {
		return status
	}
	contents, found := f.buffers[m]
	if !found {
		return InvalidMemObject
	}
	copy(contents[offset:], src)
	return Success
}

var _ clDriver = (*fakeDriver)(nil)

// testContext creates a GPU context on a fresh fakeDriver.
func testContext() (*fakeDriver, *Context, error) {
	f := newFakeDriver()
	p := newPlatform(f, testPlatformID)
	ctx, err := p.NewContext(DeviceTypeGPU)
	return f, ctx, err
}

func must(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}

func must1[T any](t T, err error) T {
	must(err)
	return t
}
