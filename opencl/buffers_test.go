package opencl

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestBufferRoundTrip(t *testing.T) {
	_, ctx, err := testContext()
	require.NoError(t, err)
	device := must1(ctx.DeviceByIndex(0))
	queue := must1(device.DefaultQueue())

	const n = 1024
	wave := make([]float32, n)
	for i := range wave {
		wave[i] = math32.Sin(2 * math32.Pi * float32(i) / n)
	}

	buffer, err := NewBuffer(ctx, MemReadWrite, n*4)
	require.NoError(t, err)
	require.Equal(t, n*4, buffer.Size())

	require.NoError(t, WriteSlice(queue, buffer, wave))
	got := make([]float32, n)
	require.NoError(t, ReadSlice(queue, buffer, got))
	require.Equal(t, wave, got)
	require.NoError(t, buffer.Destroy())
}

func TestBufferHalfRoundTrip(t *testing.T) {
	_, ctx, err := testContext()
	require.NoError(t, err)
	queue := must1(must1(ctx.DeviceByIndex(0)).DefaultQueue())

	halves := []float16.Float16{
		float16.Fromfloat32(0),
		float16.Fromfloat32(0.5),
		float16.Fromfloat32(-2),
	}
	buffer := must1(NewBuffer(ctx, MemReadOnly, len(halves)*2))
	require.NoError(t, WriteSlice(queue, buffer, halves))
	got := make([]float16.Float16, len(halves))
	require.NoError(t, ReadSlice(queue, buffer, got))
	require.Equal(t, halves, got)
}

func TestBufferOffsetsAndBounds(t *testing.T) {
	_, ctx, err := testContext()
	require.NoError(t, err)
	queue := must1(must1(ctx.DeviceByIndex(0)).DefaultQueue())
	buffer := must1(NewBuffer(ctx, MemReadWrite, 16))

	require.NoError(t, buffer.Write(queue, 8, []byte{1, 2, 3, 4}))
	got := make([]byte, 4)
	require.NoError(t, buffer.Read(queue, 8, got))
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	require.Error(t, buffer.Write(queue, 14, []byte{1, 2, 3, 4}))
	require.Error(t, buffer.Read(queue, -1, got))
}

func TestBufferInvalidSize(t *testing.T) {
	_, ctx, err := testContext()
	require.NoError(t, err)
	_, err = NewBuffer(ctx, MemReadWrite, 0)
	require.Error(t, err)
	require.Equal(t, InvalidBufferSize, CodeOf(err))
}

func TestBufferAfterDestroy(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	queue := must1(must1(ctx.DeviceByIndex(0)).DefaultQueue())
	buffer := must1(NewBuffer(ctx, MemReadWrite, 16))

	require.NoError(t, buffer.Destroy())
	require.Equal(t, 1, f.calls["ReleaseMem"])
	require.False(t, buffer.IsValid())
	require.Error(t, buffer.Write(queue, 0, []byte{1}))
	require.Error(t, buffer.Read(queue, 0, make([]byte, 1)))
	require.NoError(t, buffer.Destroy()) // no-op
	require.Equal(t, 1, f.calls["ReleaseMem"])
}

func TestBufferAllocationFailure(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	f.failWith("CreateBuffer", MemObjectAllocationFailure)
	_, err = NewBuffer(ctx, MemReadWrite, 16)
	require.Error(t, err)
	require.Equal(t, MemObjectAllocationFailure, CodeOf(err))
}

func TestImageLifecycle(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)

	format := ImageFormat{Order: ChannelRGBA, Type: ChannelUNormInt8}
	img, err := NewImage(ctx, MemReadWrite, format, ImageDesc{Type: Image2D, Width: 64, Height: 64})
	require.NoError(t, err)
	require.Equal(t, format, img.Format())
	require.Contains(t, img.String(), "64x64")

	require.NoError(t, img.Destroy())
	require.False(t, img.IsValid())
	require.Equal(t, 1, f.calls["ReleaseMem"])

	// Dimension validation happens before the native call.
	_, err = NewImage(ctx, MemReadWrite, format, ImageDesc{Type: Image3D, Width: 8, Height: 8})
	require.Error(t, err)
	require.Equal(t, InvalidImageSize, CodeOf(err))
}
