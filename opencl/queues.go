package opencl

import (
	"fmt"

	"github.com/pkg/errors"
)

// Queue wraps a native command queue on one device. It keeps a non-owning
// reference to its Device; it becomes invalid when destroyed, or when its
// device (or the device's context) is destroyed.
//
// Most callers want the per-device default queue from Device.DefaultQueue;
// NewQueue creates additional independent queues.
type Queue struct {
	device *Device
	id     QueueID
	props  QueueProperties
}

// NewQueue creates a new command queue on the device. props may combine
// QueueOutOfOrderExec and QueueProfiling, or be zero for an in-order queue.
//
// Queues created with NewQueue are owned by the caller and must be released
// with Destroy.
func NewQueue(device *Device, props QueueProperties) (*Queue, error) {
	if !device.IsValid() {
		return nil, errors.New("cannot create a queue on a destroyed device")
	}
	id, status := device.ctx.driver().CreateQueue(device.ctx.id, device.id, props)
	if err := toError("clCreateCommandQueue", status); err != nil {
		return nil, errors.WithMessagef(err, "creating command queue on %s", device)
	}
	return &Queue{device: device, id: id, props: props}, nil
}

// Device returns the device the queue was created on. It returns nil after
// the queue was destroyed.
func (q *Queue) Device() *Device { return q.device }

// Properties returns the properties the queue was created with.
func (q *Queue) Properties() QueueProperties { return q.props }

// IsValid reports whether the queue (and its device) has not been destroyed.
func (q *Queue) IsValid() bool {
	return q != nil && q.id != 0 && q.device.IsValid()
}

// Flush submits all previously queued commands to the device, without
// waiting for them.
func (q *Queue) Flush() error {
	if !q.IsValid() {
		return errors.New("queue is invalid: it or its device was destroyed")
	}
	return toError("clFlush", q.device.ctx.driver().FlushQueue(q.id))
}

// Finish blocks until all previously queued commands have completed.
func (q *Queue) Finish() error {
	if !q.IsValid() {
		return errors.New("queue is invalid: it or its device was destroyed")
	}
	return toError("clFinish", q.device.ctx.driver().FinishQueue(q.id))
}

// Destroy releases the native queue. The Queue is no longer valid
// afterwards. Destroying an already destroyed queue is a no-op.
func (q *Queue) Destroy() error {
	if q == nil || q.id == 0 {
		// Already destroyed, no-op.
		return nil
	}
	var err error
	if q.device.IsValid() {
		err = toError("clReleaseCommandQueue", q.device.ctx.driver().ReleaseQueue(q.id))
	}
	q.id = 0
	q.device = nil
	return err
}

// String implements fmt.Stringer.
func (q *Queue) String() string {
	if !q.IsValid() {
		return "Invalid queue"
	}
	return fmt.Sprintf("Queue[on %s]", q.device)
}
