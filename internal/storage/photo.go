package storage

import (
	"bytes"
	"image"
	// Decoder registration for the accepted upload formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/rmadesk/rma-portal/internal/httperr"
)

// MaxPhotoBytes bounds uploaded RMA photos.
const MaxPhotoBytes = 2 << 20

const thumbMaxDim = 320

// ValidatePhoto checks size and that the payload decodes as jpeg, png or
// webp.
func ValidatePhoto(data []byte) error {
	if len(data) == 0 {
		return httperr.ErrBusiness("photo_empty")
	}
	if len(data) > MaxPhotoBytes {
		return httperr.ErrBusiness("photo_too_large")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return httperr.ErrBusiness("photo_not_an_image")
	}
	switch format {
	case "jpeg", "png", "webp":
		return nil
	default:
		return httperr.ErrBusiness("photo_not_an_image")
	}
}

// Thumbnail downscales the photo to fit thumbMaxDim and re-encodes it as
// webp.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > h {
		if w > thumbMaxDim {
			h = h * thumbMaxDim / w
			w = thumbMaxDim
		}
	} else {
		if h > thumbMaxDim {
			w = w * thumbMaxDim / h
			h = thumbMaxDim
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
