package opencl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewQueue(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	device := must1(ctx.DeviceByIndex(0))

	queue, err := NewQueue(device, QueueProfiling)
	require.NoError(t, err)
	require.Equal(t, QueueProfiling, queue.Properties())
	require.True(t, queue.IsValid())

	// Explicit queues are independent from the device's default queue.
	defaultQueue := must1(device.DefaultQueue())
	require.NotSame(t, queue, defaultQueue)
	require.Equal(t, 2, f.calls["CreateQueue"])

	require.NoError(t, queue.Flush())
	require.NoError(t, queue.Finish())
	require.Equal(t, 1, f.calls["FlushQueue"])
	require.Equal(t, 1, f.calls["FinishQueue"])

	require.NoError(t, queue.Destroy())
	require.False(t, queue.IsValid())
	require.NoError(t, queue.Destroy()) // no-op

	// The default queue is untouched by destroying the explicit one.
	require.True(t, defaultQueue.IsValid())
}

func TestNewQueueOnDestroyedDevice(t *testing.T) {
	_, ctx, err := testContext()
	require.NoError(t, err)
	device := must1(ctx.DeviceByIndex(0))
	require.NoError(t, device.Destroy())

	_, err = NewQueue(device, 0)
	require.Error(t, err)
}

func TestQueueCreationFailure(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	device := must1(ctx.DeviceByIndex(0))

	f.failWith("CreateQueue", InvalidQueueProperties)
	_, err = NewQueue(device, QueueOutOfOrderExec)
	require.Error(t, err)
	require.Equal(t, InvalidQueueProperties, CodeOf(err))
}
