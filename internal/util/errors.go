package util

import "errors"

var (
	ErrNoExtractableText = errors.New("no extractable text found in document")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
