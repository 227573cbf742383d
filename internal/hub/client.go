package hub

import "context"

// Client is the wire-level contract with the Nyx-Index-Hub.
//
// All three operations report success as a boolean: transport errors,
// timeouts, and unparseable responses are absorbed at this boundary and
// logged, never propagated. The only non-nil error any operation returns is
// domain.ErrSuspended, raised when the hub explicitly asks the caller to back
// off; it halts the current batch rather than failing one job. The client
// carries no retry logic of its own; retries only ever happen through
// redelivery of the originating job.
type Client interface {
	// ValidateStore checks that the store belongs to the group key.
	// Success means the response body carried valid=true.
	ValidateStore(ctx context.Context, groupKey, storeName string) (bool, error)

	// UploadContent pushes a consolidated document to the store.
	// Success means HTTP 200 or 201.
	UploadContent(ctx context.Context, groupKey, storeName, contentID, markdown string, metadata map[string]any) (bool, error)

	// DeleteContent removes a document from the store.
	// Success means HTTP 200 or 204.
	DeleteContent(ctx context.Context, groupKey, storeName, contentID string) (bool, error)
}
