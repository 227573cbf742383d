package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/nyxhub/content-sync/internal/domain"
)

// Settings is the persisted, operator-editable half of the configuration:
// hub connection details and the content-type mapping table. Environment
// variables override the connection fields at resolution time (see
// resolve.go); the mapping table has no environment override.
type Settings struct {
	HubURL    string           `mapstructure:"hub_url"`
	GroupKey  string           `mapstructure:"group_key"`
	AsyncMode bool             `mapstructure:"async_mode"`
	Mappings  []domain.Mapping `mapstructure:"content_type_mappings"`
}

// LoadSettings reads the settings file with viper. A missing file is not an
// error: environment variables alone can carry a full configuration.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}

// StoreFor returns the destination store for a content type, or "" when the
// type has no enabled mapping.
func (s *Settings) StoreFor(contentType string) string {
	for _, m := range s.Mappings {
		if m.ContentType == contentType && m.Enabled && m.StoreName != "" {
			return m.StoreName
		}
	}
	return ""
}

// IsMapped reports whether a content type has an enabled mapping.
func (s *Settings) IsMapped(contentType string) bool {
	return s.StoreFor(contentType) != ""
}
