package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/curious-energy/learn-raytracing/pkg/core"
	"github.com/fogleman/gg"
)

// Framebuffer holds the unclamped linear color of every pixel, row-major
// from the top row down
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (i, j)
func (fb *Framebuffer) At(i, j int) core.Vec3 {
	return fb.Pixels[i+j*fb.Width]
}

// Set stores the color of pixel (i, j)
func (fb *Framebuffer) Set(i, j int, c core.Vec3) {
	fb.Pixels[i+j*fb.Width] = c
}

// ToneMap converts a linear color to 8-bit channels. A color whose brightest
// channel exceeds 1 is scaled down by that channel to preserve hue; every
// channel is then clamped to [0,1] and truncated to 0..255.
func ToneMap(c core.Vec3) [3]uint8 {
	if m := c.MaxComponent(); m > 1 {
		c = c.Multiply(1 / m)
	}
	c = c.Clamp(0, 1)
	return [3]uint8{uint8(255 * c.X), uint8(255 * c.Y), uint8(255 * c.Z)}
}

// Image tone maps the framebuffer into an RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			rgb := ToneMap(fb.At(i, j))
			img.SetRGBA(i, j, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// WritePPM writes the framebuffer as a binary PPM (P6) image
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	buf := make([]byte, 0, len(fb.Pixels)*3)
	for _, c := range fb.Pixels {
		rgb := ToneMap(c)
		buf = append(buf, rgb[0], rgb[1], rgb[2])
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing ppm pixels: %w", err)
	}
	return nil
}

// EncodePNG writes the framebuffer as a PNG image
func (fb *Framebuffer) EncodePNG(w io.Writer) error {
	return gg.NewContextForRGBA(fb.Image()).EncodePNG(w)
}

// SavePNG writes the framebuffer to a PNG file
func (fb *Framebuffer) SavePNG(path string) error {
	return gg.SavePNG(path, fb.Image())
}

// IsPNGPath reports whether the output path selects PNG encoding
func IsPNGPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
