// Package watermark composites the dealership logo onto vehicle photos
// before they are uploaded. The logo is scaled relative to the source image
// and placed at a fixed inset from the bottom-right corner; the result is
// re-encoded in the source format.
package watermark

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding for uploaded sources
)

const (
	// logoWidthRatio is the logo width as a fraction of the source width.
	logoWidthRatio = 0.20
	// cornerInset is the distance in pixels from the bottom-right corner.
	cornerInset = 16
	jpegQuality = 90
)

var (
	// ErrLogoUnavailable means neither the primary nor the fallback logo
	// asset could be loaded. Callers upload the original image instead.
	ErrLogoUnavailable = errors.New("watermark logo unavailable")
	// ErrUnsupportedFormat means the source cannot be re-encoded in its
	// original format (webp has no pure-Go encoder). Callers upload the
	// original image instead.
	ErrUnsupportedFormat = errors.New("unsupported format for watermarking")
)

type Compositor struct {
	logoPath     string
	fallbackPath string

	once    sync.Once
	logo    image.Image
	loadErr error
}

// New creates a Compositor that loads the logo from logoPath, falling back
// to fallbackPath. The logo is loaded lazily on first use and cached.
func New(logoPath, fallbackPath string) *Compositor {
	return &Compositor{logoPath: logoPath, fallbackPath: fallbackPath}
}

func (c *Compositor) loadLogo() (image.Image, error) {
	c.once.Do(func() {
		for _, path := range []string{c.logoPath, c.fallbackPath} {
			if path == "" {
				continue
			}
			img, err := decodeFile(path)
			if err == nil {
				c.logo = img
				return
			}
		}
		c.loadErr = ErrLogoUnavailable
	})
	return c.logo, c.loadErr
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// Apply composites the logo onto the image in data and returns the
// re-encoded bytes. contentType decides both decoding and re-encoding;
// only image/jpeg and image/png can be written back.
func (c *Compositor) Apply(data []byte, contentType string) ([]byte, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}

	logo, err := c.loadLogo()
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}

	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	scaled := scaleLogo(logo, src.Bounds().Dx())
	pos := image.Pt(
		canvas.Bounds().Max.X-scaled.Bounds().Dx()-cornerInset,
		canvas.Bounds().Max.Y-scaled.Bounds().Dy()-cornerInset,
	)
	draw.Draw(canvas, scaled.Bounds().Add(pos), scaled, scaled.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality})
	case "image/png":
		err = png.Encode(&buf, canvas)
	}
	if err != nil {
		return nil, fmt.Errorf("encode watermarked image: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleLogo(logo image.Image, srcWidth int) image.Image {
	targetW := int(float64(srcWidth) * logoWidthRatio)
	if targetW < 1 {
		targetW = 1
	}
	lb := logo.Bounds()
	targetH := targetW * lb.Dy() / lb.Dx()
	if targetH < 1 {
		targetH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), logo, lb, xdraw.Over, nil)
	return dst
}
