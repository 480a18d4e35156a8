package api

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareImage_DownscalesWideImages(t *testing.T) {
	data, mimeType := prepareImage(pngBytes(t, 2048, 100), ".png")
	assert.Equal(t, "image/png", mimeType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, maxImageWidth, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestPrepareImage_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1500, 30)), nil))

	data, mimeType := prepareImage(buf.Bytes(), ".jpg")
	assert.Equal(t, "image/jpeg", mimeType)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, cfg.Width)
}

func TestPrepareImage_SmallImageUntouched(t *testing.T) {
	in := pngBytes(t, 10, 10)
	data, mimeType := prepareImage(in, ".png")
	assert.Equal(t, in, data)
	assert.Equal(t, "image/png", mimeType)
}

func TestPrepareImage_UndecodableUsesExtension(t *testing.T) {
	in := []byte("not really an image")
	data, mimeType := prepareImage(in, ".jpeg")
	assert.Equal(t, in, data)
	assert.Equal(t, "image/jpeg", mimeType)
}
