package offers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string, thumbnail []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if thumbnail != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="thumbnail"; filename="thumb.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(thumbnail)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseForm(t *testing.T) {
	t.Run("fields and thumbnail", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"title":      "VSL Funnel",
			"drive_link": "https://drive.example.com/x",
			"tipo":       "vsl",
			"nicho":      "fitness",
		}, []byte("image-bytes"))

		in, thumb, err := ParseForm(req)
		require.NoError(t, err)
		assert.Equal(t, "VSL Funnel", in.Title)
		assert.Equal(t, "https://drive.example.com/x", in.DriveLink)
		assert.Equal(t, "vsl", in.Tipo)
		assert.Equal(t, "fitness", in.Nicho)
		require.NotNil(t, thumb)
		assert.Equal(t, []byte("image-bytes"), thumb.Data)
		assert.Equal(t, "thumb.png", thumb.Filename)
		assert.Equal(t, "image/png", thumb.ContentType)
	})

	t.Run("thumbnail part is optional", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			"title":      "VSL Funnel",
			"drive_link": "https://drive.example.com/x",
		}, nil)

		in, thumb, err := ParseForm(req)
		require.NoError(t, err)
		assert.Equal(t, "VSL Funnel", in.Title)
		assert.Nil(t, thumb)
	})

	t.Run("non-image thumbnail part is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("title", "VSL Funnel"))
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="thumbnail"; filename="notes.txt"`)
		header.Set("Content-Type", "text/plain")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not an image"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		_, _, err = ParseForm(req)
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("non-multipart body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", bytes.NewBufferString("title=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, _, err := ParseForm(req)
		assert.Error(t, err)
	})
}
