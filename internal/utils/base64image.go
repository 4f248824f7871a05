package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImagePayload = errors.New("expected a data:image/<ext>;base64 encoded payload")

// ImageBlob is an embedded image decoded from a data-URI payload.
type ImageBlob struct {
	Data []byte
	Ext  string
}

// DecodeBase64Image parses a "data:image/<ext>;base64,<payload>" string
// into a named binary blob.
func DecodeBase64Image(data string) (ImageBlob, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return ImageBlob{}, ErrInvalidImagePayload
	}

	meta, payload, found := strings.Cut(data, ";base64,")
	if !found || payload == "" {
		return ImageBlob{}, ErrInvalidImagePayload
	}

	ext := strings.TrimPrefix(meta, "data:image/")
	if ext == "" {
		return ImageBlob{}, ErrInvalidImagePayload
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageBlob{}, ErrInvalidImagePayload
	}

	return ImageBlob{Data: raw, Ext: ext}, nil
}
