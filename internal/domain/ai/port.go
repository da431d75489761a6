package ai

import "context"

// Provider is a hosted generative model. Generate is called once per
// analysis; implementations must not retry.
type Provider interface {
	Model() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is one prompt for a provider. Image is optional.
type Request struct {
	System string
	User   string
	Image  *Image
}

// Image is a decoded inline image.
type Image struct {
	MIMEType string
	Data     []byte
}
