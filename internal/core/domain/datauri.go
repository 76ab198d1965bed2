package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI returns a base64 data URI for data.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its media type and payload.
// Only the base64 form is accepted.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URI", ErrInvalidInput)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: malformed data URI", ErrInvalidInput)
	}

	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URI is not base64", ErrInvalidInput)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: data URI payload: %v", ErrInvalidInput, err)
	}

	return mediaType, data, nil
}
