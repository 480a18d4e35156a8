package api

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/nfnt/resize"
)

// maxImageWidth bounds the width of uploads forwarded to the model.
const maxImageWidth = 1024

var allowedExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
}

// prepareImage downscales wide uploads and reports their MIME type. Data
// that cannot be decoded is passed through unchanged.
func prepareImage(data []byte, extension string) ([]byte, string) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = allowedExtensions[extension]
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds().Dx() <= maxImageWidth {
		return data, mimeType
	}

	img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	resizedType := "image/jpeg"
	if format == "png" {
		resizedType = "image/png"
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data, mimeType
	}
	return buf.Bytes(), resizedType
}
