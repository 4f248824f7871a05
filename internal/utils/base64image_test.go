package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	blob, err := DecodeBase64Image(payload)
	require.NoError(t, err)
	assert.Equal(t, raw, blob.Data)
	assert.Equal(t, "png", blob.Ext)
}

func TestDecodeBase64ImageRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"plain base64", base64.StdEncoding.EncodeToString([]byte("x"))},
		{"wrong scheme", "data:text/plain;base64,eA=="},
		{"missing payload", "data:image/png;base64,"},
		{"missing extension", "data:image/;base64,eA=="},
		{"bad base64", "data:image/png;base64,%%%%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBase64Image(tc.data)
			assert.ErrorIs(t, err, ErrInvalidImagePayload)
		})
	}
}
