package ai

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURI parses "data:image/png;base64,...." into an Image. A bare
// base64 payload is accepted and assumed to be JPEG.
func DecodeDataURI(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidImage
	}

	mime := "image/jpeg"
	payload := s
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: missing comma", ErrInvalidImage)
		}
		meta := s[len("data:"):comma]
		payload = s[comma+1:]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrInvalidImage)
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mime = m
		}
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: unsupported media type %s", ErrInvalidImage, mime)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return &Image{MIMEType: mime, Data: data}, nil
}

// DataURI renders the image back into a data URI (used by providers that
// take image URLs).
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// Ext guesses a file extension from the MIME type.
func (i *Image) Ext() string {
	switch i.MIMEType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
