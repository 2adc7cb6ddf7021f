package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"evently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+ImageField+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/events/create", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseMultipartEvent(t *testing.T) {
	const maxBytes = 64

	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		wantErr     error
		wantImage   bool
	}{
		{"no file", "", "", nil, nil, false},
		{"valid png", "poster.png", "image/png", []byte("png-bytes"), nil, true},
		{"upper case extension accepted", "POSTER.JPEG", "image/jpeg", []byte("jpg"), nil, true},
		{"bad extension", "poster.bmp", "image/bmp", []byte("bmp"), domain.ErrImageExtension, false},
		{"extension ok but mime wrong", "poster.png", "text/plain", []byte("txt"), domain.ErrInvalidImageType, false},
		{"svg mime rejected", "poster.png", "image/svg+xml", []byte("<svg/>"), domain.ErrInvalidImageType, false},
		{"too large", "poster.png", "image/png", bytes.Repeat([]byte("x"), maxBytes+1), domain.ErrImageTooLarge, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, map[string]string{"title": "Hack Night"}, tt.filename, tt.contentType, tt.data)
			img, err := ParseMultipartEvent(httptest.NewRecorder(), req, maxBytes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Hack Night", req.FormValue("title"))
			if !tt.wantImage {
				assert.Nil(t, img)
				return
			}
			require.NotNil(t, img)
			assert.Equal(t, tt.filename, img.Filename)
			assert.Equal(t, tt.data, img.Data)
		})
	}
}

func TestParseMultipartEvent_URLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/events/x", strings.NewReader("title=Updated"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	img, err := ParseMultipartEvent(httptest.NewRecorder(), req, 64)
	require.NoError(t, err)
	assert.Nil(t, img)
	assert.Equal(t, "Updated", req.FormValue("title"))
}
