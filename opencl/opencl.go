// Package opencl implements a Go object layer for the OpenCL C API.
//
// The entry point is Platforms (or DefaultPlatform), from which a Context is
// created for a class of devices (see Platform.NewContext, NewGPUContext and
// NewCPUContext). A Context constructs and owns its Device objects; a Device
// lazily caches its capabilities (Device.MaxWorkGroupSize and siblings) and
// owns one lazily created default command queue (Device.DefaultQueue). Extra
// queues can be created with NewQueue, and device memory is managed through
// Buffer and Image.
//
// The native entry points are only compiled in when building with the
// "opencl" build tag (linking against libOpenCL); without it every call
// fails with ErrNotBuilt. Installed OpenCL drivers can be inspected without
// linking anything through AvailableDrivers, which reads the ICD registry.
package opencl
