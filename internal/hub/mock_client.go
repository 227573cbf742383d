package hub

import (
	"context"
	"sync"
)

// UploadCall records the arguments of one UploadContent invocation.
type UploadCall struct {
	GroupKey  string
	StoreName string
	ContentID string
	Markdown  string
	Metadata  map[string]any
}

// DeleteCall records the arguments of one DeleteContent invocation.
type DeleteCall struct {
	GroupKey  string
	StoreName string
	ContentID string
}

// MockClient is a hand-written Client for unit tests. Each operation
// defaults to success; tests flip the booleans or set the error overrides
// to exercise rejection and suspend paths. All calls are recorded.
type MockClient struct {
	mu sync.Mutex

	ValidateResult bool
	UploadResult   bool
	DeleteResult   bool

	ValidateErr error
	UploadErr   error
	DeleteErr   error

	ValidateCalls []string // store names
	UploadCalls   []UploadCall
	DeleteCalls   []DeleteCall
}

func NewMockClient() *MockClient {
	return &MockClient{ValidateResult: true, UploadResult: true, DeleteResult: true}
}

func (m *MockClient) ValidateStore(_ context.Context, _, storeName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidateCalls = append(m.ValidateCalls, storeName)
	if m.ValidateErr != nil {
		return false, m.ValidateErr
	}
	return m.ValidateResult, nil
}

func (m *MockClient) UploadContent(_ context.Context, groupKey, storeName, contentID, markdown string, metadata map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, UploadCall{
		GroupKey:  groupKey,
		StoreName: storeName,
		ContentID: contentID,
		Markdown:  markdown,
		Metadata:  metadata,
	})
	if m.UploadErr != nil {
		return false, m.UploadErr
	}
	return m.UploadResult, nil
}

func (m *MockClient) DeleteContent(_ context.Context, groupKey, storeName, contentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{
		GroupKey:  groupKey,
		StoreName: storeName,
		ContentID: contentID,
	})
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	return m.DeleteResult, nil
}

// TotalCalls reports how many hub operations were invoked in total.
func (m *MockClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ValidateCalls) + len(m.UploadCalls) + len(m.DeleteCalls)
}

// compile-time check that MockClient implements Client
var _ Client = (*MockClient)(nil)
