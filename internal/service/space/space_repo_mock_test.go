package space

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ spaceRepo = &spaceRepoMock{}

type spaceRepoMock struct {
	CreateFunc             func(ctx context.Context, space *domain.Space) (*domain.Space, error)
	ListAccessibleFunc     func(ctx context.Context, userID uuid.UUID) ([]domain.Space, error)
	ListByOrganizationFunc func(ctx context.Context, orgID uuid.UUID) ([]domain.Space, error)
	UpdateFunc             func(ctx context.Context, id uuid.UUID, params domain.SpaceUpdateParams) (*domain.Space, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	CountPersonalFunc      func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Space *domain.Space
		}
		ListAccessible []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListByOrganization []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.SpaceUpdateParams
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		CountPersonal []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockCreate             sync.RWMutex
	lockListAccessible     sync.RWMutex
	lockListByOrganization sync.RWMutex
	lockUpdate             sync.RWMutex
	lockDelete             sync.RWMutex
	lockCountPersonal      sync.RWMutex
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

func (mock *spaceRepoMock) ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.Space, error) {
	if mock.ListAccessibleFunc == nil {
		panic("spaceRepoMock.ListAccessibleFunc: method is nil but spaceRepo.ListAccessible was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListAccessible.Lock()
	mock.calls.ListAccessible = append(mock.calls.ListAccessible, callInfo)
	mock.lockListAccessible.Unlock()
	return mock.ListAccessibleFunc(ctx, userID)
}

func (mock *spaceRepoMock) ListAccessibleCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListAccessible.RLock()
	calls := mock.calls.ListAccessible
	mock.lockListAccessible.RUnlock()
	return calls
}

func (mock *spaceRepoMock) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Space, error) {
	if mock.ListByOrganizationFunc == nil {
		panic("spaceRepoMock.ListByOrganizationFunc: method is nil but spaceRepo.ListByOrganization was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		OrgID uuid.UUID
	}{Ctx: ctx, OrgID: orgID}
	mock.lockListByOrganization.Lock()
	mock.calls.ListByOrganization = append(mock.calls.ListByOrganization, callInfo)
	mock.lockListByOrganization.Unlock()
	return mock.ListByOrganizationFunc(ctx, orgID)
}

func (mock *spaceRepoMock) ListByOrganizationCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockListByOrganization.RLock()
	calls := mock.calls.ListByOrganization
	mock.lockListByOrganization.RUnlock()
	return calls
}

func (mock *spaceRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.SpaceUpdateParams) (*domain.Space, error) {
	if mock.UpdateFunc == nil {
		panic("spaceRepoMock.UpdateFunc: method is nil but spaceRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.SpaceUpdateParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *spaceRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.SpaceUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *spaceRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("spaceRepoMock.DeleteFunc: method is nil but spaceRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *spaceRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *spaceRepoMock) CountPersonal(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountPersonalFunc == nil {
		panic("spaceRepoMock.CountPersonalFunc: method is nil but spaceRepo.CountPersonal was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountPersonal.Lock()
	mock.calls.CountPersonal = append(mock.calls.CountPersonal, callInfo)
	mock.lockCountPersonal.Unlock()
	return mock.CountPersonalFunc(ctx, userID)
}

func (mock *spaceRepoMock) CountPersonalCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountPersonal.RLock()
	calls := mock.calls.CountPersonal
	mock.lockCountPersonal.RUnlock()
	return calls
}
