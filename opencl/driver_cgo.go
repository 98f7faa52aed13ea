//go:build opencl

package opencl

// Real clDriver implementation, linking against the system libOpenCL (the
// ICD loader). Build with `-tags opencl`.

/*
#cgo !darwin LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL

#define CL_TARGET_OPENCL_VERSION 120
#define CL_USE_DEPRECATED_OPENCL_1_1_APIS
#define CL_USE_DEPRECATED_OPENCL_1_2_APIS

#ifdef __APPLE__
#include "OpenCL/opencl.h"
#else
#include "CL/opencl.h"
#endif
*/
import "C"
import (
	"unsafe"
)

func newDriver() (clDriver, error) {
	return cgoDriver{}, nil
}

// cgoDriver forwards every clDriver method to the corresponding OpenCL C
// call. It is stateless: all state lives in the native layer.
type cgoDriver struct{}

func (cgoDriver) PlatformIDs() ([]PlatformID, ErrorCode) {
	var count C.cl_uint
	status := C.clGetPlatformIDs(0, nil, &count)
	if status != C.CL_SUCCESS {
		return nil, ErrorCode(status)
	}
	if count == 0 {
		return nil, Success
	}
	cIDs := make([]C.cl_platform_id, count)
	status = C.clGetPlatformIDs(count, &cIDs[0], nil)
	if status != C.CL_SUCCESS {
		return nil, ErrorCode(status)
	}
	ids := make([]PlatformID, count)
	for ii, cID := range cIDs {
		ids[ii] = PlatformID(uintptr(unsafe.Pointer(cID)))
	}
	return ids, Success
}

func (cgoDriver) PlatformInfo(p PlatformID, param PlatformInfoParam) (string, ErrorCode) {
	cID := C.cl_platform_id(unsafe.Pointer(uintptr(p)))
	var size C.size_t
	status := C.clGetPlatformInfo(cID, C.cl_platform_info(param), 0, nil, &size)
	if status != C.CL_SUCCESS {
		return "", ErrorCode(status)
	}
	if size == 0 {
		return "", Success
	}
	buf := make([]byte, size)
	status = C.clGetPlatformInfo(cID, C.cl_platform_info(param), size, unsafe.Pointer(&buf[0]), nil)
	if status != C.CL_SUCCESS {
		return "", ErrorCode(status)
	}
	return trimNul(buf), Success
}

func (cgoDriver) DeviceIDs(p PlatformID, deviceType DeviceType) ([]DeviceID, ErrorCode) {
	cID := C.cl_platform_id(unsafe.Pointer(uintptr(p)))
	var count C.cl_uint
	status := C.clGetDeviceIDs(cID, C.cl_device_type(deviceType), 0, nil, &count)
	if status != C.CL_SUCCESS {
		return nil, ErrorCode(status)
	}
	if count == 0 {
		return nil, Success
	}
	cDevs := make([]C.cl_device_id, count)
	status = C.clGetDeviceIDs(cID, C.cl_device_type(deviceType), count, &cDevs[0], nil)
	if status != C.CL_SUCCESS {
		return nil, ErrorCode(status)
	}
	ids := make([]DeviceID, count)
	for ii, cDev := range cDevs {
		ids[ii] = DeviceID(uintptr(unsafe.Pointer(cDev)))
	}
	return ids, Success
}

func (cgoDriver) DeviceInfoString(d DeviceID, param DeviceInfoParam) (string, ErrorCode) {
	cID := C.cl_device_id(unsafe.Pointer(uintptr(d)))
	var size C.size_t
	status := C.clGetDeviceInfo(cID, C.cl_device_info(param), 0, nil, &size)
	if status != C.CL_SUCCESS {
		return "", ErrorCode(status)
	}
	if size == 0 {
		return "", Success
	}
	buf := make([]byte, size)
	status = C.clGetDeviceInfo(cID, C.cl_device_info(param), size, unsafe.Pointer(&buf[0]), nil)
	if status != C.CL_SUCCESS {
		return "", ErrorCode(status)
	}
	return trimNul(buf), Success
}

// DeviceInfoUint64 reads a scalar device attribute. The native types vary
// (cl_uint, cl_ulong, size_t, cl_device_type), so the value is read at its
// reported size and widened.
func (cgoDriver) DeviceInfoUint64(d DeviceID, param DeviceInfoParam) (uint64, ErrorCode) {
	cID := C.cl_device_id(unsafe.Pointer(uintptr(d)))
	var size C.size_t
	status := C.clGetDeviceInfo(cID, C.cl_device_info(param), 0, nil, &size)
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	var buf [8]byte
	if size > C.size_t(len(buf)) {
		return 0, InvalidValue
	}
	status = C.clGetDeviceInfo(cID, C.cl_device_info(param), size, unsafe.Pointer(&buf[0]), nil)
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	switch size {
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&buf[0]))), Success
	case 8:
		return *(*uint64)(unsafe.Pointer(&buf[0])), Success
	}
	return 0, InvalidValue
}

func (cgoDriver) CreateContext(p PlatformID, devices []DeviceID) (ContextID, ErrorCode) {
	props := []C.cl_context_properties{
		C.CL_CONTEXT_PLATFORM,
		C.cl_context_properties(uintptr(p)),
		0,
	}
	cDevs := make([]C.cl_device_id, len(devices))
	for ii, d := range devices {
		cDevs[ii] = C.cl_device_id(unsafe.Pointer(uintptr(d)))
	}
	var status C.cl_int
	ctx := C.clCreateContext(&props[0], C.cl_uint(len(cDevs)), &cDevs[0], nil, nil, &status)
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	return ContextID(uintptr(unsafe.Pointer(ctx))), Success
}

func (cgoDriver) ReleaseContext(ctx ContextID) ErrorCode {
	return ErrorCode(C.clReleaseContext(C.cl_context(unsafe.Pointer(uintptr(ctx)))))
}

func (cgoDriver) CreateQueue(ctx ContextID, d DeviceID, props QueueProperties) (QueueID, ErrorCode) {
	var status C.cl_int
	queue := C.clCreateCommandQueue(
		C.cl_context(unsafe.Pointer(uintptr(ctx))),
		C.cl_device_id(unsafe.Pointer(uintptr(d))),
		C.cl_command_queue_properties(props),
		&status)
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	return QueueID(uintptr(unsafe.Pointer(queue))), Success
}

func (cgoDriver) ReleaseQueue(q QueueID) ErrorCode {
	return ErrorCode(C.clReleaseCommandQueue(C.cl_command_queue(unsafe.Pointer(uintptr(q)))))
}

func (cgoDriver) FlushQueue(q QueueID) ErrorCode {
	return ErrorCode(C.clFlush(C.cl_command_queue(unsafe.Pointer(uintptr(q)))))
}

func (cgoDriver) FinishQueue(q QueueID) ErrorCode {
	return ErrorCode(C.clFinish(C.cl_command_queue(unsafe.Pointer(uintptr(q)))))
}

func (cgoDriver) CreateBuffer(ctx ContextID, flags MemFlags, size int) (MemID, ErrorCode) {
	var status C.cl_int
	mem := C.clCreateBuffer(
		C.cl_context(unsafe.Pointer(uintptr(ctx))),
		C.cl_mem_flags(flags),
		C.size_t(size),
		nil,
		&status)
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	return MemID(uintptr(unsafe.Pointer(mem))), Success
}

func (cgoDriver) CreateImage(ctx ContextID, flags MemFlags, format ImageFormat, desc ImageDesc) (MemID, ErrorCode) {
	cFormat := C.cl_image_format{
		image_channel_order:     C.cl_channel_order(format.Order),
		image_channel_data_type: C.cl_channel_type(format.Type),
	}
	var status C.cl_int
	var mem C.cl_mem
	cCtx := C.cl_context(unsafe.Pointer(uintptr(ctx)))
	if desc.Type == Image3D {
		mem = C.clCreateImage3D(cCtx, C.cl_mem_flags(flags), &cFormat,
			C.size_t(desc.Width), C.size_t(desc.Height), C.size_t(desc.Depth),
			0, 0, nil, &status)
	} else {
		mem = C.clCreateImage2D(cCtx, C.cl_mem_flags(flags), &cFormat,
			C.size_t(desc.Width), C.size_t(desc.Height),
			0, nil, &status)
	}
	if status != C.CL_SUCCESS {
		return 0, ErrorCode(status)
	}
	return MemID(uintptr(unsafe.Pointer(mem))), Success
}

func (cgoDriver) ReleaseMem(m MemID) ErrorCode {
	return ErrorCode(C.clReleaseMemObject(C.cl_mem(unsafe.Pointer(uintptr(m)))))
}

func (cgoDriver) ReadBuffer(q QueueID, m MemID, offset int, dst []byte) ErrorCode {
	if len(dst) == 0 {
		return Success
	}
	return ErrorCode(C.clEnqueueReadBuffer(
		C.cl_command_queue(unsafe.Pointer(uintptr(q))),
		C.cl_mem(unsafe.Pointer(uintptr(m))),
		C.CL_TRUE,
		C.size_t(offset),
		C.size_t(len(dst)),
		unsafe.Pointer(&dst[0]),
		0, nil, nil))
}

func (cgoDriver) WriteBuffer(q QueueID, m MemID, offset int, src []byte) ErrorCode {
	if len(src) == 0 {
		return Success
	}
	return ErrorCode(C.clEnqueueWriteBuffer(
		C.cl_command_queue(unsafe.Pointer(uintptr(q))),
		C.cl_mem(unsafe.Pointer(uintptr(m))),
		C.CL_TRUE,
		C.size_t(offset),
		C.size_t(len(src)),
		unsafe.Pointer(&src[0]),
		0, nil, nil))
}

// trimNul drops the trailing NUL (and anything after) of a C string buffer.
func trimNul(buf []byte) string {
	for ii, b := range buf {
		if b == 0 {
			return string(buf[:ii])
		}
	}
	return string(buf)
}
