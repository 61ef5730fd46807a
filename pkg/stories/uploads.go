package stories

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/errcodes"
)

// Upload is a single file submitted with a new story.
type Upload struct {
	Slot     Slot
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadFromFileHeader wraps a multipart file.
func UploadFromFileHeader(slot Slot, fh *multipart.FileHeader) Upload {
	return Upload{
		Slot:     slot,
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// UploadFromBytes wraps an in-memory file.
func UploadFromBytes(slot Slot, filename string, data []byte) Upload {
	return Upload{
		Slot:     slot,
		Filename: filename,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// UploadsFromForm collects the files of every upload slot in the order they
// were submitted. Only the first cover image is kept.
func UploadsFromForm(files map[string][]*multipart.FileHeader) []Upload {
	var uploads []Upload
	for _, slot := range []Slot{SlotChapterImage, SlotLicenseImage, SlotCoverImage} {
		headers := files[string(slot)]
		if slot == SlotCoverImage && len(headers) > 1 {
			headers = headers[:1]
		}
		for _, fh := range headers {
			uploads = append(uploads, UploadFromFileHeader(slot, fh))
		}
	}
	return uploads
}

// validateImage sniffs the content of the upload and rejects anything that
// isn't an image.
func validateImage(u Upload) error {
	r, err := u.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return errors.WithStack(err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return errcodes.ValidationError(`"` + string(u.Slot) + `" must be an image, got ` + mt.String())
	}
	return nil
}
