package access

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ spaceRepo = &spaceRepoMock{}

type spaceRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Space, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *spaceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	if mock.GetByIDFunc == nil {
		panic("spaceRepoMock.GetByIDFunc: method is nil but spaceRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *spaceRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
