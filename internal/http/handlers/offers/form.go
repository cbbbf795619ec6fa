// Package offers holds the multipart form decoding shared by the offer
// create and update endpoints. The metadata travels as form fields, the
// thumbnail as an optional file part.
package offers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/catalog"
)

// MaxUploadSize caps the multipart form, thumbnail included.
const MaxUploadSize = 10 << 20

// ErrNotImage is returned when the thumbnail part carries a non-image content
// type.
var ErrNotImage = errors.New("thumbnail must be an image")

// ParseForm decodes the offer fields and the optional thumbnail part from a
// multipart request.
func ParseForm(r *http.Request) (models.OfferInput, *catalog.Thumbnail, error) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return models.OfferInput{}, nil, err
	}

	in := models.OfferInput{
		Title:     r.FormValue("title"),
		DriveLink: r.FormValue("drive_link"),
		Tipo:      r.FormValue("tipo"),
		Estrutura: r.FormValue("estrutura"),
		Idioma:    r.FormValue("idioma"),
		Nicho:     r.FormValue("nicho"),
		Trafego:   r.FormValue("trafego"),
	}

	file, header, err := r.FormFile("thumbnail")
	if err == http.ErrMissingFile {
		return in, nil, nil
	}
	if err != nil {
		return models.OfferInput{}, nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return models.OfferInput{}, nil, ErrNotImage
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return models.OfferInput{}, nil, err
	}
	return in, &catalog.Thumbnail{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
	}, nil
}
