package space

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ fileKeyLister = &fileKeyListerMock{}

type fileKeyListerMock struct {
	StorageKeysBySpaceFunc func(ctx context.Context, spaceID uuid.UUID) ([]string, error)

	calls struct {
		StorageKeysBySpace []struct {
			Ctx     context.Context
			SpaceID uuid.UUID
		}
	}
	lockStorageKeysBySpace sync.RWMutex
}

func (mock *fileKeyListerMock) StorageKeysBySpace(ctx context.Context, spaceID uuid.UUID) ([]string, error) {
	if mock.StorageKeysBySpaceFunc == nil {
		panic("fileKeyListerMock.StorageKeysBySpaceFunc: method is nil but fileKeyLister.StorageKeysBySpace was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		SpaceID uuid.UUID
	}{Ctx: ctx, SpaceID: spaceID}
	mock.lockStorageKeysBySpace.Lock()
	mock.calls.StorageKeysBySpace = append(mock.calls.StorageKeysBySpace, callInfo)
	mock.lockStorageKeysBySpace.Unlock()
	return mock.StorageKeysBySpaceFunc(ctx, spaceID)
}

func (mock *fileKeyListerMock) StorageKeysBySpaceCalls() []struct {
	Ctx     context.Context
	SpaceID uuid.UUID
} {
	mock.lockStorageKeysBySpace.RLock()
	calls := mock.calls.StorageKeysBySpace
	mock.lockStorageKeysBySpace.RUnlock()
	return calls
}
