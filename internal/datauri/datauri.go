// Package datauri converts between raw documents and the
// data:<mimetype>;base64,<payload> form that the model APIs accept inline.
package datauri

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

var ErrMalformed = errors.New("malformed data URI")

type DataURI struct {
	MIMEType string
	Data     []byte
}

// Parse accepts only base64 data URIs that declare a MIME type and carry a
// non-empty payload.
func Parse(s string) (*DataURI, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("%w: missing data: scheme", ErrMalformed)
	}

	header, _, found := strings.Cut(s, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: payload must be base64 encoded", ErrMalformed)
	}
	if strings.TrimPrefix(strings.TrimSuffix(header, ";base64"), "data:") == "" {
		return nil, fmt.Errorf("%w: missing MIME type", ErrMalformed)
	}

	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if du.Encoding != dataurl.EncodingBase64 {
		return nil, fmt.Errorf("%w: payload must be base64 encoded", ErrMalformed)
	}
	if len(du.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	return &DataURI{
		MIMEType: du.MediaType.ContentType(),
		Data:     du.Data,
	}, nil
}

// Encode builds a base64 data URI. A MIME type that is not type/subtype is
// replaced with application/octet-stream.
func Encode(mimeType string, data []byte) string {
	if strings.Count(mimeType, "/") != 1 || strings.ContainsAny(mimeType, "; ") {
		mimeType = "application/octet-stream"
	}
	return dataurl.New(data, mimeType).String()
}

func (d *DataURI) String() string {
	return Encode(d.MIMEType, d.Data)
}
