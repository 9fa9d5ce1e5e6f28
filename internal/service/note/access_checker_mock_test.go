package note

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ accessChecker = &accessCheckerMock{}

type accessCheckerMock struct {
	RequireSpaceFunc func(ctx context.Context, userID uuid.UUID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error)

	calls struct {
		RequireSpace []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID uuid.UUID
			Min     domain.SpaceAccess
		}
	}
	lockRequireSpace sync.RWMutex
}

func (mock *accessCheckerMock) RequireSpace(ctx context.Context, userID uuid.UUID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error) {
	if mock.RequireSpaceFunc == nil {
		panic("accessCheckerMock.RequireSpaceFunc: method is nil but accessChecker.RequireSpace was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID uuid.UUID
		Min     domain.SpaceAccess
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID, Min: min}
	mock.lockRequireSpace.Lock()
	mock.calls.RequireSpace = append(mock.calls.RequireSpace, callInfo)
	mock.lockRequireSpace.Unlock()
	return mock.RequireSpaceFunc(ctx, userID, spaceID, min)
}

func (mock *accessCheckerMock) RequireSpaceCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID uuid.UUID
	Min     domain.SpaceAccess
} {
	mock.lockRequireSpace.RLock()
	calls := mock.calls.RequireSpace
	mock.lockRequireSpace.RUnlock()
	return calls
}
