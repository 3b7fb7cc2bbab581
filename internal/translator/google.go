package translator

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates through the Google Cloud Translation API. It
// has no character metering and no server-side glossary resource, so
// Usage reports unmetered and glossary requests are rejected; the context
// hint is not supported by the API and is ignored.
type GoogleService struct {
	credentials string
}

// NewGoogleService builds a client using the given credentials file, or
// ambient application-default credentials when empty.
func NewGoogleService(credentialsFile string) *GoogleService {
	return &GoogleService{credentials: credentialsFile}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (string, error) {
	if len(req.Glossary) > 0 {
		return "", fmt.Errorf("glossaries: %w", ErrUnsupported)
	}

	sourceTag, err := language.Parse(req.Pair.Source)
	if err != nil {
		return "", fmt.Errorf("invalid source language: %w", err)
	}
	targetTag, err := language.Parse(req.Pair.Target)
	if err != nil {
		return "", fmt.Errorf("invalid target language: %w", err)
	}

	opts := []option.ClientOption{}
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
		Source: sourceTag,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}
	return translations[0].Text, nil
}

// Usage reports an unmetered account; the API exposes no quota query.
func (s *GoogleService) Usage(ctx context.Context) (Usage, error) {
	return Usage{}, nil
}
