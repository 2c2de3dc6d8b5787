// Package encode serializes rendered tables for transport.
//
// [PNG] produces lossless PNG bytes. [CQImage] wraps them in the inline
// image segment understood by CQ-code chat bots:
//
//	[CQ:image,file=base64://iVBORw0KGgo...]
//
// [DataURI] produces a plain data: URI for integrations without that
// protocol.
package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatCQ      Format = "cq"      // [CQ:image,file=base64://...]
	FormatPNG     Format = "png"     // raw PNG bytes
	FormatDataURI Format = "datauri" // data:image/png;base64,...
)

// CQPrefix starts every string returned by [CQImage].
const CQPrefix = "[CQ:image,file=base64://"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatCQ:      true,
	FormatPNG:     true,
	FormatDataURI: true,
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: cq, png, datauri)", s)
	}
	return f, nil
}

// PNG encodes img as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// CQImage encodes img as a CQ-code inline image segment.
func CQImage(img image.Image) (string, error) {
	data, err := PNG(img)
	if err != nil {
		return "", err
	}
	return CQImageBytes(data), nil
}

// CQImageBytes wraps already-encoded PNG bytes in a CQ-code image segment.
func CQImageBytes(data []byte) string {
	return fmt.Sprintf("%s%s]", CQPrefix, base64.StdEncoding.EncodeToString(data))
}

// DataURI encodes img as a data: URI.
func DataURI(img image.Image) (string, error) {
	data, err := PNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Encode encodes img in the given format.
func Encode(img image.Image, format Format) ([]byte, error) {
	data, err := PNG(img)
	if err != nil {
		return nil, err
	}
	return Wrap(data, format)
}

// Wrap converts PNG bytes to the given format.
func Wrap(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatPNG:
		return data, nil
	case FormatCQ:
		return []byte(CQImageBytes(data)), nil
	case FormatDataURI:
		return []byte("data:image/png;base64," + base64.StdEncoding.EncodeToString(data)), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
}

// Decode extracts the PNG image from a CQ image segment.
func Decode(segment string) (image.Image, error) {
	if !strings.HasPrefix(segment, CQPrefix) || !strings.HasSuffix(segment, "]") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not a CQ image segment")
	}
	payload := strings.TrimSuffix(strings.TrimPrefix(segment, CQPrefix), "]")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode base64")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode png")
	}
	return img, nil
}
