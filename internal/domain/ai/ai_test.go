package ai

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	img, err := DecodeDataURI("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte("hello"), img.Data)
	assert.Equal(t, ".png", img.Ext())
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", img.DataURI())

	img, err = DecodeDataURI("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestDecodeDataURI_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,!!!",
	} {
		_, err := DecodeDataURI(in)
		assert.ErrorIs(t, err, ErrInvalidImage, in)
	}
}

func TestFailure(t *testing.T) {
	err := Failure("gpt-4o", http.StatusTooManyRequests, errors.New("slow down"))
	assert.ErrorIs(t, err, ErrProviderFailure)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, "quota", Kind(err))

	err = Failure("gpt-4o", 0, errors.New("context deadline exceeded"))
	assert.ErrorIs(t, err, ErrProviderFailure)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, "timeout", Kind(err))

	err = Failure("gpt-4o", http.StatusUnauthorized, errors.New("invalid api key"))
	assert.Equal(t, "auth", Kind(err))

	assert.ErrorIs(t, Failure("m", 0, nil), ErrProviderFailure)
	assert.Equal(t, "ok", Kind(nil))
}
