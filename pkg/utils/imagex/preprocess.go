// Package imagex prepares uploaded images for the model API: decode,
// downscale to a bounded dimension, and re-encode as JPEG so the base64
// payload stays small.
package imagex

import (
	"bytes"
	"image"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"techlens/pkg/domain/model"
)

const (
	// MaxDimension bounds the longest image edge sent to the model
	MaxDimension = 1024

	jpegQuality = 85
)

// Preprocess decodes, scales and re-encodes an uploaded image. An upload that
// cannot be decoded is passed through untouched with its sniffed content type,
// leaving it to the model API to accept or reject it.
func Preprocess(data []byte) *model.ImageAttachment {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &model.ImageAttachment{
			MIME: http.DetectContentType(data),
			Data: data,
		}
	}

	img = scaleDown(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return &model.ImageAttachment{
			MIME: http.DetectContentType(data),
			Data: data,
		}
	}
	return &model.ImageAttachment{
		MIME: "image/jpeg",
		Data: buf.Bytes(),
	}
}

// scaleDown resizes img so its longest edge is at most maxDim, preserving the
// aspect ratio. Images already within bounds are returned as-is.
func scaleDown(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img
	}

	ratio := float64(maxDim) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*ratio), int(float64(h)*ratio)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
