package domain

import "time"

// Operation is the kind of reconciliation a SyncJob requests.
type Operation string

const (
	OperationSync   Operation = "sync"
	OperationDelete Operation = "delete"
)

func (o Operation) IsValid() bool {
	switch o {
	case OperationSync, OperationDelete:
		return true
	}
	return false
}

// SyncJob is a queued instruction to reconcile one content type after a
// change to one item. Immutable once enqueued; delivery is at-least-once,
// so a job may be claimed more than once across lease expiry or restarts.
type SyncJob struct {
	ID           string    `json:"id"`
	Operation    Operation `json:"operation"`
	NodeID       int64     `json:"node_id"`
	ContentType  string    `json:"content_type"`
	Title        string    `json:"title,omitempty"`
	ExcludedNode *int64    `json:"excluded_node,omitempty"`
	CreatedAt    time.Time `json:"timestamp"`
}

// JobPayload is the inbound change-event body. Operation, NodeID, and
// ContentType are required; a payload missing any of them is dropped.
type JobPayload struct {
	Operation    string `json:"operation"`
	NodeID       int64  `json:"node_id"`
	ContentType  string `json:"content_type"`
	Title        string `json:"title,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	ExcludedNode *int64 `json:"excluded_node,omitempty"`
}

func (p *JobPayload) Validate() error {
	if p.Operation == "" {
		return ErrMissingOperation
	}
	if p.NodeID == 0 {
		return ErrMissingNodeID
	}
	if p.ContentType == "" {
		return ErrMissingContentType
	}
	return nil
}
