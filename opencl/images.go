package opencl

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ChannelOrder is a cl_channel_order value.
type ChannelOrder uint32

const (
	ChannelR         ChannelOrder = 0x10B0
	ChannelA         ChannelOrder = 0x10B1
	ChannelRG        ChannelOrder = 0x10B2
	ChannelRA        ChannelOrder = 0x10B3
	ChannelRGB       ChannelOrder = 0x10B4
	ChannelRGBA      ChannelOrder = 0x10B5
	ChannelBGRA      ChannelOrder = 0x10B6
	ChannelARGB      ChannelOrder = 0x10B7
	ChannelIntensity ChannelOrder = 0x10B8
	ChannelLuminance ChannelOrder = 0x10B9
)

// ChannelType is a cl_channel_type value.
type ChannelType uint32

const (
	ChannelSNormInt8   ChannelType = 0x10D0
	ChannelSNormInt16  ChannelType = 0x10D1
	ChannelUNormInt8   ChannelType = 0x10D2
	ChannelUNormInt16  ChannelType = 0x10D3
	ChannelSignedInt8  ChannelType = 0x10D7
	ChannelSignedInt16 ChannelType = 0x10D8
	ChannelSignedInt32 ChannelType = 0x10D9
	ChannelUInt8       ChannelType = 0x10DA
	ChannelUInt16      ChannelType = 0x10DB
	ChannelUInt32      ChannelType = 0x10DC
	ChannelHalfFloat   ChannelType = 0x10DD
	ChannelFloat       ChannelType = 0x10DE
)

// ImageFormat describes the pixel layout of an Image, matching
// cl_image_format.
type ImageFormat struct {
	Order ChannelOrder
	Type  ChannelType
}

// ImageType selects between 2D and 3D images.
type ImageType int

const (
	Image2D ImageType = iota
	Image3D
)

// ImageDesc describes the dimensions of an Image. Depth is ignored for 2D
// images.
type ImageDesc struct {
	Type                 ImageType
	Width, Height, Depth int
}

// Image is a reference to a native 2D or 3D image object. Sharing images
// with OpenGL textures is out of scope of this package.
type Image struct {
	ctx    *Context
	id     MemID
	format ImageFormat
	desc   ImageDesc
}

// NewImage allocates a device image on the context.
func NewImage(ctx *Context, flags MemFlags, format ImageFormat, desc ImageDesc) (*Image, error) {
	if ctx == nil || ctx.id == 0 {
		return nil, errors.New("cannot create an image on a destroyed context")
	}
	if desc.Width <= 0 || desc.Height <= 0 || (desc.Type == Image3D && desc.Depth <= 0) {
		return nil, toError("clCreateImage", InvalidImageSize)
	}
	id, status := ctx.driver().CreateImage(ctx.id, flags, format, desc)
	if err := toError("clCreateImage", status); err != nil {
		return nil, errors.WithMessagef(err, "creating image %dx%dx%d on %s", desc.Width, desc.Height, desc.Depth, ctx)
	}
	img := &Image{ctx: ctx, id: id, format: format, desc: desc}
	runtime.SetFinalizer(img, finalizeImage)
	return img, nil
}

func finalizeImage(img *Image) {
	err := img.Destroy()
	if err != nil {
		klog.Errorf("Image.Destroy failed: %v", err)
	}
}

// Format returns the pixel format of the image.
func (img *Image) Format() ImageFormat { return img.format }

// Desc returns the dimensions of the image.
func (img *Image) Desc() ImageDesc { return img.desc }

// IsValid reports whether the image has not been destroyed.
func (img *Image) IsValid() bool {
	return img != nil && img.id != 0 && img.ctx != nil && img.ctx.id != 0
}

// Destroy releases the native image object. This is automatically called if
// the Image is garbage collected.
func (img *Image) Destroy() error {
	if img == nil || img.id == 0 {
		// Already destroyed, no-op.
		return nil
	}
	defer runtime.KeepAlive(img)
	var err error
	if img.ctx != nil && img.ctx.id != 0 {
		err = toError("clReleaseMemObject", img.ctx.driver().ReleaseMem(img.id))
	}
	img.id = 0
	img.ctx = nil
	return err
}

// String implements fmt.Stringer.
func (img *Image) String() string {
	if !img.IsValid() {
		return "Invalid image"
	}
	if img.desc.Type == Image3D {
		return fmt.Sprintf("Image[3D %dx%dx%d]", img.desc.Width, img.desc.Height, img.desc.Depth)
	}
	return fmt.Sprintf("Image[2D %dx%d]", img.desc.Width, img.desc.Height)
}
