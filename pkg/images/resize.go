package images

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for content types we cannot re-encode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrDecode is returned when the payload is not a decodable image.
var ErrDecode = errors.New("could not decode image")

// ResizeSquare scales and center-crops the image to size×size, re-encoding
// it in the format implied by contentType (image/jpeg or image/png).
func ResizeSquare(data []byte, size int, contentType string) ([]byte, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	square := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
