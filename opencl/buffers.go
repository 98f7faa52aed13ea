package opencl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/gocl/cltypes"
)

// Buffer is a reference to an untyped device memory object (cl_mem) created
// on a Context. Transfers go through a Queue and are blocking: when
// Write/Read return, the host slice has been fully consumed/filled.
type Buffer struct {
	ctx   *Context
	id    MemID
	flags MemFlags
	size  int
}

// NewBuffer allocates a device buffer of size bytes on the context.
func NewBuffer(ctx *Context, flags MemFlags, size int) (*Buffer, error) {
	if ctx == nil || ctx.id == 0 {
		return nil, errors.New("cannot create a buffer on a destroyed context")
	}
	if size <= 0 {
		return nil, toError("clCreateBuffer", InvalidBufferSize)
	}
	id, status := ctx.driver().CreateBuffer(ctx.id, flags, size)
	if err := toError("clCreateBuffer", status); err != nil {
		return nil, errors.WithMessagef(err, "allocating %d bytes on %s", size, ctx)
	}
	b := &Buffer{ctx: ctx, id: id, flags: flags, size: size}
	runtime.SetFinalizer(b, finalizeBuffer)
	return b, nil
}

func finalizeBuffer(b *Buffer) {
	err := b.Destroy()
	if err != nil {
		klog.Errorf("Buffer.Destroy failed: %v", err)
	}
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int { return b.size }

// IsValid reports whether the buffer has not been destroyed.
func (b *Buffer) IsValid() bool {
	return b != nil && b.id != 0 && b.ctx != nil && b.ctx.id != 0
}

// Write copies src to the buffer at the given byte offset, enqueueing on q
// and blocking until the transfer completed.
func (b *Buffer) Write(q *Queue, offset int, src []byte) error {
	if err := b.checkTransfer(q, offset, len(src)); err != nil {
		return err
	}
	return toError("clEnqueueWriteBuffer", b.ctx.driver().WriteBuffer(q.id, b.id, offset, src))
}

// Read copies len(dst) bytes from the buffer at the given byte offset into
// dst, enqueueing on q and blocking until the transfer completed.
func (b *Buffer) Read(q *Queue, offset int, dst []byte) error {
	if err := b.checkTransfer(q, offset, len(dst)); err != nil {
		return err
	}
	return toError("clEnqueueReadBuffer", b.ctx.driver().ReadBuffer(q.id, b.id, offset, dst))
}

func (b *Buffer) checkTransfer(q *Queue, offset, n int) error {
	if !b.IsValid() {
		return errors.New("buffer is invalid: it or its context was destroyed")
	}
	if !q.IsValid() {
		return errors.New("queue is invalid: it or its device was destroyed")
	}
	if offset < 0 || offset+n > b.size {
		return errors.Errorf("transfer of %d bytes at offset %d out of range for buffer of %d bytes", n, offset, b.size)
	}
	return nil
}

// Destroy releases the native memory object. The Buffer is no longer valid
// afterwards. This is automatically called if the Buffer is garbage
// collected.
func (b *Buffer) Destroy() error {
	if b == nil || b.id == 0 {
		// Already destroyed, no-op.
		return nil
	}
	defer runtime.KeepAlive(b)
	var err error
	if b.ctx != nil && b.ctx.id != 0 {
		err = toError("clReleaseMemObject", b.ctx.driver().ReleaseMem(b.id))
	}
	b.id = 0
	b.ctx = nil
	return err
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	if !b.IsValid() {
		return "Invalid buffer"
	}
	return fmt.Sprintf("Buffer[%d bytes]", b.size)
}

// WriteSlice writes a slice of scalars to the buffer starting at offset 0,
// blocking until done. The buffer must be at least len(data) elements
// large.
func WriteSlice[T cltypes.Scalar](q *Queue, b *Buffer, data []T) error {
	return b.Write(q, 0, flatBytes(data))
}

// ReadSlice fills dst from the start of the buffer, blocking until done.
func ReadSlice[T cltypes.Scalar](q *Queue, b *Buffer, dst []T) error {
	return b.Read(q, 0, flatBytes(dst))
}

// flatBytes reinterprets a scalar slice as its underlying bytes. The
// returned slice aliases data.
func flatBytes[T cltypes.Scalar](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var t T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*int(unsafe.Sizeof(t)))
}
