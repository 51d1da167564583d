package slurm

import (
	"context"
	"errors"
)

// MockClient serves canned accounting records, for tests and the "mock"
// accounting backend.
type MockClient struct {
	// Records maps task index to its record. Indices not present resolve
	// to UnknownRecord.
	Records map[int]Record

	// FailIndices forces a query error for the listed indices, exercising
	// the degrade-to-UNKNOWN path.
	FailIndices map[int]bool
}

// NewMockClient creates an empty mock; every index resolves to UNKNOWN.
func NewMockClient() *MockClient {
	return &MockClient{Records: map[int]Record{}}
}

func (m *MockClient) Resolve(_ context.Context, _ string, index int) (Record, error) {
	if m.FailIndices[index] {
		return Record{}, errors.New("mock accounting failure")
	}
	rec, ok := m.Records[index]
	if !ok {
		return UnknownRecord(), nil
	}
	return rec, nil
}
