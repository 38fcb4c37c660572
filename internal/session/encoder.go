package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/datauri"
	"github.com/sirupsen/logrus"
)

// File is a user-selected file. Open is called once, from the encoding
// goroutine, so it must not depend on the lifetime of the request that
// selected it.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func(ctx context.Context) (io.ReadCloser, error)
}

// BytesFile wraps an in-memory payload as a File.
func BytesFile(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type Encoder interface {
	Encode(ctx context.Context, f File) (string, error)
}

type EncoderFunc func(ctx context.Context, f File) (string, error)

func (fn EncoderFunc) Encode(ctx context.Context, f File) (string, error) {
	return fn(ctx, f)
}

type dataURIEncoder struct {
	maxBytes int64
}

// NewEncoder reads files into base64 data URIs, refusing anything larger
// than maxBytes.
func NewEncoder(maxBytes int64) Encoder {
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxDocumentBytes
	}
	return &dataURIEncoder{maxBytes: maxBytes}
}

func (e *dataURIEncoder) Encode(ctx context.Context, f File) (string, error) {
	log := config.WithContext(ctx).WithField("file", f.Name)

	if f.Size > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrDocumentTooLarge, f.Size)
	}
	if f.Open == nil {
		return "", errors.New("file has no content")
	}

	rc, err := f.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, e.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if int64(len(data)) > e.maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, e.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s is empty", f.Name)
	}

	if detected := mimetype.Detect(data); !detected.Is(PDFContentType) {
		log.WithFields(logrus.Fields{
			"declared": f.ContentType,
			"detected": detected.String(),
		}).Warn("File content does not look like a PDF")
	}

	return datauri.Encode(PDFContentType, data), nil
}

func encodingNotice(err error, maxBytes int64) Notice {
	if errors.Is(err, ErrDocumentTooLarge) {
		return Notice{
			Title:       "File Too Large",
			Description: fmt.Sprintf("Please upload a PDF no larger than %s.", humanize.IBytes(uint64(maxBytes))),
		}
	}
	return Notice{
		Title:       "Could Not Read File",
		Description: "The selected file could not be read. Please try again.",
	}
}
