package blob

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for uploaded files

	xdraw "golang.org/x/image/draw"
)

// applyTransform decodes the image, applies the crop/scale transform and
// re-encodes as JPEG.
func applyTransform(data []byte, t Transform) ([]byte, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var dst *image.RGBA
	switch t.Crop {
	case CropFill:
		dst = image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, centerCrop(src.Bounds(), t.Width, t.Height), xdraw.Over, nil)
	default: // CropLimit: scale down to fit, never upscale
		b := src.Bounds()
		w, h := b.Dx(), b.Dy()
		if w <= t.Width && h <= t.Height {
			return data, nil
		}
		scale := min(float64(t.Width)/float64(w), float64(t.Height)/float64(h))
		dst = image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// centerCrop returns the largest sub-rectangle of b with the target
// aspect ratio, centered.
func centerCrop(b image.Rectangle, width, height int) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	targetRatio := float64(width) / float64(height)
	srcRatio := float64(w) / float64(h)

	cropW, cropH := w, h
	if srcRatio > targetRatio {
		cropW = int(float64(h) * targetRatio)
	} else {
		cropH = int(float64(w) / targetRatio)
	}

	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
