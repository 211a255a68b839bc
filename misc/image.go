package misc

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
)

// EncodeImage encodes img as "png" or "jpeg"
func EncodeImage(img image.Image, format string) ([]byte, error) {
	var buffer bytes.Buffer
	var err error

	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(&buffer, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buffer, img, &jpeg.Options{Quality: 95})
	default:
		return nil, fmt.Errorf("unknown image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode %s image - %w", format, err)
	}
	return buffer.Bytes(), nil
}

// SaveImage writes img to fileName, picking the format from the file extension
func SaveImage(fileName string, img image.Image) error {
	format := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if format == "" {
		return fmt.Errorf("no image format in file name %s", fileName)
	}
	contents, err := EncodeImage(img, format)
	if err != nil {
		return err
	}
	_, err = WriteFile(fileName, contents)
	return err
}
