package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		bucket  string
		baseURL string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "url under base",
			url:     "https://cdn.example.com/offers/abc.png",
			bucket:  "thumbnails",
			baseURL: "https://cdn.example.com",
			wantKey: "offers/abc.png",
			wantOK:  true,
		},
		{
			name:    "url with bucket segment",
			url:     "https://host/storage/v1/object/public/thumbnails/offers/abc.png",
			bucket:  "thumbnails",
			baseURL: "https://cdn.example.com",
			wantKey: "offers/abc.png",
			wantOK:  true,
		},
		{
			name:    "foreign url",
			url:     "https://elsewhere.com/image.png",
			bucket:  "thumbnails",
			baseURL: "https://cdn.example.com",
			wantOK:  false,
		},
		{
			name:    "base url with no key",
			url:     "https://cdn.example.com/",
			bucket:  "thumbnails",
			baseURL: "https://cdn.example.com",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := KeyFromURL(tt.url, tt.bucket, tt.baseURL)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, key)
			}
		})
	}
}
