package cloudinary

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/rs/zerolog"
)

// Config contains credentials and delivery options for Cloudinary.
type Config struct {
	CloudName      string
	APIKey         string
	APISecret      string
	Transformation string
	FallbackURL    string
}

// AvatarResolver turns a stored avatar reference into a delivery URL.
type AvatarResolver interface {
	AvatarURL(reference string) string
}

// Service builds avatar delivery URLs. References that already are URLs pass
// through unchanged; anything else is treated as a Cloudinary public id.
type Service struct {
	client         *cloudinary.Cloudinary
	transformation string
	fallback       string
	logger         zerolog.Logger
}

// New constructs a Cloudinary-backed resolver.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Service{
		client:         cld,
		transformation: cfg.Transformation,
		fallback:       cfg.FallbackURL,
		logger:         logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Passthrough returns a resolver that never contacts Cloudinary.
func Passthrough(fallback string) *Service {
	return &Service{fallback: fallback, logger: zerolog.Nop()}
}

// AvatarURL resolves reference, falling back to the default avatar when empty or unresolvable.
func (s *Service) AvatarURL(reference string) string {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return s.fallback
	}
	if isURL(reference) || s.client == nil {
		return reference
	}

	image, err := s.client.Image(reference)
	if err != nil {
		s.logger.Warn().Err(err).Str("public_id", reference).Msg("invalid avatar public id")
		return s.fallback
	}
	image.Transformation = s.transformation

	url, err := image.String()
	if err != nil {
		s.logger.Warn().Err(err).Str("public_id", reference).Msg("failed to build avatar url")
		return s.fallback
	}

	return url
}

func isURL(reference string) bool {
	return strings.HasPrefix(reference, "https://") ||
		strings.HasPrefix(reference, "http://") ||
		strings.HasPrefix(reference, "/")
}
