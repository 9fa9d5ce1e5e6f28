package note

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ noteRepo = &noteRepoMock{}

type noteRepoMock struct {
	CreateFunc       func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	GetByIDsFunc     func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Note, error)
	ListFunc         func(ctx context.Context, userID uuid.UUID, filter domain.NoteFilter) ([]domain.Note, error)
	UpdateFunc       func(ctx context.Context, id uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	BatchUpdateFunc  func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, params domain.NoteUpdateParams) ([]domain.Note, error)
	ReorderFunc      func(ctx context.Context, userID uuid.UUID, positions []domain.NotePosition) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	NextPositionFunc func(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) (int, error)
	ListFoldersFunc  func(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) ([][]string, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Note *domain.Note
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDs []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.NoteFilter
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.NoteUpdateParams
		}
		BatchUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []uuid.UUID
			Params domain.NoteUpdateParams
		}
		Reorder []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			Positions []domain.NotePosition
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		NextPosition []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID *uuid.UUID
		}
		ListFolders []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID *uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockGetByIDs     sync.RWMutex
	lockList         sync.RWMutex
	lockUpdate       sync.RWMutex
	lockBatchUpdate  sync.RWMutex
	lockReorder      sync.RWMutex
	lockDelete       sync.RWMutex
	lockNextPosition sync.RWMutex
	lockListFolders  sync.RWMutex
}

func (mock *noteRepoMock) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if mock.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc: method is nil but noteRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Note *domain.Note
	}{Ctx: ctx, Note: note}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, note)
}

func (mock *noteRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Note *domain.Note
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *noteRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	if mock.GetByIDFunc == nil {
		panic("noteRepoMock.GetByIDFunc: method is nil but noteRepo.GetByID was just called")
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

func (mock *noteRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *noteRepoMock) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Note, error) {
	if mock.GetByIDsFunc == nil {
		panic("noteRepoMock.GetByIDsFunc: method is nil but noteRepo.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []uuid.UUID
	}{Ctx: ctx, UserID: userID, IDs: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, userID, ids)
}

func (mock *noteRepoMock) GetByIDsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *noteRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.NoteFilter) ([]domain.Note, error) {
	if mock.ListFunc == nil {
		panic("noteRepoMock.ListFunc: method is nil but noteRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.NoteFilter
	}{Ctx: ctx, UserID: userID, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, filter)
}

func (mock *noteRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.NoteFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *noteRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	if mock.UpdateFunc == nil {
		panic("noteRepoMock.UpdateFunc: method is nil but noteRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.NoteUpdateParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *noteRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.NoteUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *noteRepoMock) BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, params domain.NoteUpdateParams) ([]domain.Note, error) {
	if mock.BatchUpdateFunc == nil {
		panic("noteRepoMock.BatchUpdateFunc: method is nil but noteRepo.BatchUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []uuid.UUID
		Params domain.NoteUpdateParams
	}{Ctx: ctx, UserID: userID, IDs: ids, Params: params}
	mock.lockBatchUpdate.Lock()
	mock.calls.BatchUpdate = append(mock.calls.BatchUpdate, callInfo)
	mock.lockBatchUpdate.Unlock()
	return mock.BatchUpdateFunc(ctx, userID, ids, params)
}

func (mock *noteRepoMock) BatchUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []uuid.UUID
	Params domain.NoteUpdateParams
} {
	mock.lockBatchUpdate.RLock()
	calls := mock.calls.BatchUpdate
	mock.lockBatchUpdate.RUnlock()
	return calls
}

func (mock *noteRepoMock) Reorder(ctx context.Context, userID uuid.UUID, positions []domain.NotePosition) error {
	if mock.ReorderFunc == nil {
		panic("noteRepoMock.ReorderFunc: method is nil but noteRepo.Reorder was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		Positions []domain.NotePosition
	}{Ctx: ctx, UserID: userID, Positions: positions}
	mock.lockReorder.Lock()
	mock.calls.Reorder = append(mock.calls.Reorder, callInfo)
	mock.lockReorder.Unlock()
	return mock.ReorderFunc(ctx, userID, positions)
}

func (mock *noteRepoMock) ReorderCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	Positions []domain.NotePosition
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}

func (mock *noteRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc: method is nil but noteRepo.Delete was just called")
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

func (mock *noteRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *noteRepoMock) NextPosition(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) (int, error) {
	if mock.NextPositionFunc == nil {
		panic("noteRepoMock.NextPositionFunc: method is nil but noteRepo.NextPosition was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID *uuid.UUID
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID}
	mock.lockNextPosition.Lock()
	mock.calls.NextPosition = append(mock.calls.NextPosition, callInfo)
	mock.lockNextPosition.Unlock()
	return mock.NextPositionFunc(ctx, userID, spaceID)
}

func (mock *noteRepoMock) NextPositionCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID *uuid.UUID
} {
	mock.lockNextPosition.RLock()
	calls := mock.calls.NextPosition
	mock.lockNextPosition.RUnlock()
	return calls
}

func (mock *noteRepoMock) ListFolders(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) ([][]string, error) {
	if mock.ListFoldersFunc == nil {
		panic("noteRepoMock.ListFoldersFunc: method is nil but noteRepo.ListFolders was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID *uuid.UUID
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID}
	mock.lockListFolders.Lock()
	mock.calls.ListFolders = append(mock.calls.ListFolders, callInfo)
	mock.lockListFolders.Unlock()
	return mock.ListFoldersFunc(ctx, userID, spaceID)
}

func (mock *noteRepoMock) ListFoldersCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID *uuid.UUID
} {
	mock.lockListFolders.RLock()
	calls := mock.calls.ListFolders
	mock.lockListFolders.RUnlock()
	return calls
}
