package opencl

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is a native OpenCL status code (cl_int). Zero is success,
// negative values are errors.
type ErrorCode int32

const (
	Success                    ErrorCode = 0
	DeviceNotFound             ErrorCode = -1
	DeviceNotAvailable         ErrorCode = -2
	CompilerNotAvailable       ErrorCode = -3
	MemObjectAllocationFailure ErrorCode = -4
	OutOfResources             ErrorCode = -5
	OutOfHostMemory            ErrorCode = -6
	ProfilingInfoNotAvailable  ErrorCode = -7
	MemCopyOverlap             ErrorCode = -8
	ImageFormatMismatch        ErrorCode = -9
	ImageFormatNotSupported    ErrorCode = -10
	BuildProgramFailure        ErrorCode = -11
	MapFailure                 ErrorCode = -12
	InvalidValue               ErrorCode = -30
	InvalidDeviceType          ErrorCode = -31
	InvalidPlatform            ErrorCode = -32
	InvalidDevice              ErrorCode = -33
	InvalidContext             ErrorCode = -34
	InvalidQueueProperties     ErrorCode = -35
	InvalidCommandQueue        ErrorCode = -36
	InvalidHostPtr             ErrorCode = -37
	InvalidMemObject           ErrorCode = -38
	InvalidImageFormatDescr    ErrorCode = -39
	InvalidImageSize           ErrorCode = -40
	InvalidSampler             ErrorCode = -41
	InvalidBinary              ErrorCode = -42
	InvalidBuildOptions        ErrorCode = -43
	InvalidProgram             ErrorCode = -44
	InvalidProgramExecutable   ErrorCode = -45
	InvalidKernelName          ErrorCode = -46
	InvalidKernelDefinition    ErrorCode = -47
	InvalidKernel              ErrorCode = -48
	InvalidArgIndex            ErrorCode = -49
	InvalidArgValue            ErrorCode = -50
	InvalidArgSize             ErrorCode = -51
	InvalidKernelArgs          ErrorCode = -52
	InvalidWorkDimension       ErrorCode = -53
	InvalidWorkGroupSize       ErrorCode = -54
	InvalidWorkItemSize        ErrorCode = -55
	InvalidGlobalOffset        ErrorCode = -56
	InvalidEventWaitList       ErrorCode = -57
	InvalidEvent               ErrorCode = -58
	InvalidOperation           ErrorCode = -59
	InvalidGLObject            ErrorCode = -60
	InvalidBufferSize          ErrorCode = -61
	InvalidMipLevel            ErrorCode = -62
	InvalidGlobalWorkSize      ErrorCode = -63
)

var errorCodeNames = map[ErrorCode]string{
	Success:                    "CL_SUCCESS",
	DeviceNotFound:             "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:         "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:       "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure: "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:             "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:            "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:  "CL_PROFILING_INFO_NOT_AVAILABLE",
	MemCopyOverlap:             "CL_MEM_COPY_OVERLAP",
	ImageFormatMismatch:        "CL_IMAGE_FORMAT_MISMATCH",
	ImageFormatNotSupported:    "CL_IMAGE_FORMAT_NOT_SUPPORTED",
	BuildProgramFailure:        "CL_BUILD_PROGRAM_FAILURE",
	MapFailure:                 "CL_MAP_FAILURE",
	InvalidValue:               "CL_INVALID_VALUE",
	InvalidDeviceType:          "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:            "CL_INVALID_PLATFORM",
	InvalidDevice:              "CL_INVALID_DEVICE",
	InvalidContext:             "CL_INVALID_CONTEXT",
	InvalidQueueProperties:     "CL_INVALID_QUEUE_PROPERTIES",
	InvalidCommandQueue:        "CL_INVALID_COMMAND_QUEUE",
	InvalidHostPtr:             "CL_INVALID_HOST_PTR",
	InvalidMemObject:           "CL_INVALID_MEM_OBJECT",
	InvalidImageFormatDescr:    "CL_INVALID_IMAGE_FORMAT_DESCRIPTOR",
	InvalidImageSize:           "CL_INVALID_IMAGE_SIZE",
	InvalidSampler:             "CL_INVALID_SAMPLER",
	InvalidBinary:              "CL_INVALID_BINARY",
	InvalidBuildOptions:        "CL_INVALID_BUILD_OPTIONS",
	InvalidProgram:             "CL_INVALID_PROGRAM",
	InvalidProgramExecutable:   "CL_INVALID_PROGRAM_EXECUTABLE",
	InvalidKernelName:          "CL_INVALID_KERNEL_NAME",
	InvalidKernelDefinition:    "CL_INVALID_KERNEL_DEFINITION",
	InvalidKernel:              "CL_INVALID_KERNEL",
	InvalidArgIndex:            "CL_INVALID_ARG_INDEX",
	InvalidArgValue:            "CL_INVALID_ARG_VALUE",
	InvalidArgSize:             "CL_INVALID_ARG_SIZE",
	InvalidKernelArgs:          "CL_INVALID_KERNEL_ARGS",
	InvalidWorkDimension:       "CL_INVALID_WORK_DIMENSION",
	InvalidWorkGroupSize:       "CL_INVALID_WORK_GROUP_SIZE",
	InvalidWorkItemSize:        "CL_INVALID_WORK_ITEM_SIZE",
	InvalidGlobalOffset:        "CL_INVALID_GLOBAL_OFFSET",
	InvalidEventWaitList:       "CL_INVALID_EVENT_WAIT_LIST",
	InvalidEvent:               "CL_INVALID_EVENT",
	InvalidOperation:           "CL_INVALID_OPERATION",
	InvalidGLObject:            "CL_INVALID_GL_OBJECT",
	InvalidBufferSize:          "CL_INVALID_BUFFER_SIZE",
	InvalidMipLevel:            "CL_INVALID_MIP_LEVEL",
	InvalidGlobalWorkSize:      "CL_INVALID_GLOBAL_WORK_SIZE",
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	if name, found := errorCodeNames[c]; found {
		return name
	}
	return fmt.Sprintf("CL_UNKNOWN_ERROR(%d)", int32(c))
}

// Error is returned by every operation that forwards a native call: it
// carries the OpenCL status code and the name of the C entry point that
// reported it.
type Error struct {
	Op   string
	Code ErrorCode
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s failed with %s (%d)", e.Op, e.Code, int32(e.Code))
}

// toError converts a native status code to a Go error, annotated with a
// stack trace (see github.com/pkg/errors). It returns nil on Success.
func toError(op string, code ErrorCode) error {
	if code == Success {
		return nil
	}
	return errors.WithStack(&Error{Op: op, Code: code})
}

// CodeOf returns the OpenCL status code carried by err, unwrapping any
// github.com/pkg/errors annotations. It returns Success if err is nil or
// did not originate in a native call.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	if clErr, ok := errors.Cause(err).(*Error); ok {
		return clErr.Code
	}
	return Success
}
