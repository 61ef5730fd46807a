package config

// PublicConfig is the subset of the configuration that clients can read.
type PublicConfig struct {
	DefaultLocale        string `json:"default_locale"`
	IncrementRepeatViews bool   `json:"increment_repeat_views"`
	StorageDriver        string `json:"storage_driver"`
	StoriesPageSize      int    `json:"stories_page_size"`
	MaxStoriesPageSize   int    `json:"max_stories_page_size"`
	BodyLimit            string `json:"body_limit"`
}

// MaxStoriesPageSize caps the per_page parameter of story listings.
const MaxStoriesPageSize = 50

type Service struct {
	config *Config
}

func NewService(cfg *Config) *Service {
	return &Service{config: cfg}
}

func (s *Service) RetrievePublicConfig() *PublicConfig {
	return &PublicConfig{
		DefaultLocale:        s.config.DefaultLocale,
		IncrementRepeatViews: s.config.IncrementRepeatViews,
		StorageDriver:        s.config.StorageDriver,
		StoriesPageSize:      s.config.StoriesPageSize,
		MaxStoriesPageSize:   MaxStoriesPageSize,
		BodyLimit:            s.config.BodyLimit,
	}
}
