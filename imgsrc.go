package segchain

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ImageLuma adapts a standard library image.Image into a PixelSource over
// its 8-bit luminance plane, the way the teacher's grayToY/toYCbCr/
// rgbaToYCbCr/yCbCrToYCbCr family adapts image.Image into 8x8 blocks for
// JPEG encoding. It lets a host decode any image/jpeg, image/png, or
// image/gif file with the standard library and run the segmentation
// pipeline over it without hand-building a numeric raster.
type ImageLuma struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageLuma wraps img for use as a PixelSource. It returns
// InvalidArgumentError if img is nil or empty.
func NewImageLuma(img image.Image) (ImageLuma, error) {
	if img == nil {
		return ImageLuma{}, InvalidArgumentError("nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ImageLuma{}, InvalidArgumentError("empty image")
	}
	return ImageLuma{img: img, bounds: b}, nil
}

func (s ImageLuma) Dims() (int, int) { return s.bounds.Dx(), s.bounds.Dy() }

func (s ImageLuma) Type() PixelType { return U8 }

// at returns the 8-bit luma sample at raster coordinate (x,y), which is
// relative to s.bounds.Min the same way SliceSource indexes relative to its
// Offset.
func (s ImageLuma) at(x, y int) uint8 {
	px, py := s.bounds.Min.X+x, s.bounds.Min.Y+y
	switch m := s.img.(type) {
	case *image.Gray:
		return m.GrayAt(px, py).Y
	case *image.Gray16:
		return uint8(m.Gray16At(px, py).Y >> 8)
	case *image.YCbCr:
		return m.YCbCrAt(px, py).Y
	default:
		r, g, b, _ := s.img.At(px, py).RGBA()
		yy, _, _ := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		return yy
	}
}

// NewSegmentationFromFile opens path, decodes it with the standard library's
// registered image formats, and builds a Segmentation over its luminance
// plane. It uses a scope to make sure the file is closed on every return
// path, including the error paths of decode and of NewSegmentation itself.
func NewSegmentationFromFile(path string, threshold float64) (*Segmentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sc scope
	var ok bool
	sc.push(func() { f.Close() })
	defer sc.close(&ok)

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	src, err := NewImageLuma(img)
	if err != nil {
		return nil, err
	}
	sgm, err := NewSegmentation(src, threshold)
	if err != nil {
		return nil, err
	}
	ok = true
	return sgm, f.Close()
}
