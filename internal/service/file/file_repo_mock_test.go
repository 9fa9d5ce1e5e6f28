package file

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ fileRepo = &fileRepoMock{}

type fileRepoMock struct {
	CreateFunc       func(ctx context.Context, file *domain.File) (*domain.File, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.File, error)
	ListFunc         func(ctx context.Context, userID uuid.UUID, filter domain.FileFilter) ([]domain.File, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, params domain.FileUpdateParams) (*domain.File, error)
	IsDescendantFunc func(ctx context.Context, ancestor uuid.UUID, candidate uuid.UUID) (bool, error)
	DeleteTreeFunc   func(ctx context.Context, id uuid.UUID) ([]string, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			File *domain.File
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.FileFilter
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.FileUpdateParams
		}
		IsDescendant []struct {
			Ctx       context.Context
			Ancestor  uuid.UUID
			Candidate uuid.UUID
		}
		DeleteTree []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockList         sync.RWMutex
	lockUpdate       sync.RWMutex
	lockIsDescendant sync.RWMutex
	lockDeleteTree   sync.RWMutex
}

func (mock *fileRepoMock) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	if mock.CreateFunc == nil {
		panic("fileRepoMock.CreateFunc: method is nil but fileRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		File *domain.File
	}{Ctx: ctx, File: file}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, file)
}

func (mock *fileRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	File *domain.File
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *fileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	if mock.GetByIDFunc == nil {
		panic("fileRepoMock.GetByIDFunc: method is nil but fileRepo.GetByID was just called")
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

func (mock *fileRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *fileRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.FileFilter) ([]domain.File, error) {
	if mock.ListFunc == nil {
		panic("fileRepoMock.ListFunc: method is nil but fileRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.FileFilter
	}{Ctx: ctx, UserID: userID, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, filter)
}

func (mock *fileRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.FileFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *fileRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.FileUpdateParams) (*domain.File, error) {
	if mock.UpdateFunc == nil {
		panic("fileRepoMock.UpdateFunc: method is nil but fileRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.FileUpdateParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *fileRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.FileUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *fileRepoMock) IsDescendant(ctx context.Context, ancestor uuid.UUID, candidate uuid.UUID) (bool, error) {
	if mock.IsDescendantFunc == nil {
		panic("fileRepoMock.IsDescendantFunc: method is nil but fileRepo.IsDescendant was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Ancestor  uuid.UUID
		Candidate uuid.UUID
	}{Ctx: ctx, Ancestor: ancestor, Candidate: candidate}
	mock.lockIsDescendant.Lock()
	mock.calls.IsDescendant = append(mock.calls.IsDescendant, callInfo)
	mock.lockIsDescendant.Unlock()
	return mock.IsDescendantFunc(ctx, ancestor, candidate)
}

func (mock *fileRepoMock) IsDescendantCalls() []struct {
	Ctx       context.Context
	Ancestor  uuid.UUID
	Candidate uuid.UUID
} {
	mock.lockIsDescendant.RLock()
	calls := mock.calls.IsDescendant
	mock.lockIsDescendant.RUnlock()
	return calls
}

func (mock *fileRepoMock) DeleteTree(ctx context.Context, id uuid.UUID) ([]string, error) {
	if mock.DeleteTreeFunc == nil {
		panic("fileRepoMock.DeleteTreeFunc: method is nil but fileRepo.DeleteTree was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDeleteTree.Lock()
	mock.calls.DeleteTree = append(mock.calls.DeleteTree, callInfo)
	mock.lockDeleteTree.Unlock()
	return mock.DeleteTreeFunc(ctx, id)
}

func (mock *fileRepoMock) DeleteTreeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDeleteTree.RLock()
	calls := mock.calls.DeleteTree
	mock.lockDeleteTree.RUnlock()
	return calls
}
