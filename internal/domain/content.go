package domain

import "time"

// ContentItem is one unit of content in the host repository.
// The sync pipeline only reads items; it never creates or mutates them.
type ContentItem struct {
	ID          int64     `json:"id"`
	ContentType string    `json:"content_type"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Mapping ties a content type to its destination store on the hub.
// A content type without an enabled mapping is never synchronized.
type Mapping struct {
	ContentType string `mapstructure:"content_type"`
	StoreName   string `mapstructure:"store_name"`
	Enabled     bool   `mapstructure:"enabled"`
}

// SyncConfig is the resolved (group key, store name) pair for one content
// type. It is recomputed on every sync attempt, never persisted.
type SyncConfig struct {
	GroupKey  string
	StoreName string
}

// DocumentID returns the hub-side document identifier for a content type.
// Every published item of the type is consolidated into this one document.
func DocumentID(contentType string) string {
	return "content_type_" + contentType
}
