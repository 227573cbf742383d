package domain

import (
	"errors"
	"testing"
)

func TestJobPayload_Validate(t *testing.T) {
	valid := JobPayload{Operation: "sync", NodeID: 7, ContentType: "article"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		payload JobPayload
		wantErr error
	}{
		{"missing operation", JobPayload{NodeID: 7, ContentType: "article"}, ErrMissingOperation},
		{"missing node id", JobPayload{Operation: "sync", ContentType: "article"}, ErrMissingNodeID},
		{"missing content type", JobPayload{Operation: "sync", NodeID: 7}, ErrMissingContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.payload.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOperation_IsValid(t *testing.T) {
	if !OperationSync.IsValid() || !OperationDelete.IsValid() {
		t.Fatal("sync and delete are valid operations")
	}
	if Operation("reindex").IsValid() {
		t.Fatal("unknown operation must not validate")
	}
}

func TestDocumentID(t *testing.T) {
	if got := DocumentID("article"); got != "content_type_article" {
		t.Fatalf("unexpected document id %q", got)
	}
}
