package auth

import (
	"context"
	"sync"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ spaceRepo = &spaceRepoMock{}

type spaceRepoMock struct {
	CreateFunc func(ctx context.Context, space *domain.Space) (*domain.Space, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Space *domain.Space
		}
	}
	lockCreate sync.RWMutex
}

func (mock *spaceRepoMock) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	if mock.CreateFunc == nil {
		panic("spaceRepoMock.CreateFunc: method is nil but spaceRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Space *domain.Space
	}{Ctx: ctx, Space: space}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, space)
}

func (mock *spaceRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Space *domain.Space
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
