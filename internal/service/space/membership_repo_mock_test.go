package space

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	GetMembershipFunc func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Membership, error)
	ExistsFunc        func(ctx context.Context, orgID uuid.UUID) (bool, error)

	calls struct {
		GetMembership []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
		}
		Exists []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
	}
	lockGetMembership sync.RWMutex
	lockExists        sync.RWMutex
}

func (mock *membershipRepoMock) GetMembership(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Membership, error) {
	if mock.GetMembershipFunc == nil {
		panic("membershipRepoMock.GetMembershipFunc: method is nil but membershipRepo.GetMembership was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, OrgID: orgID, UserID: userID}
	mock.lockGetMembership.Lock()
	mock.calls.GetMembership = append(mock.calls.GetMembership, callInfo)
	mock.lockGetMembership.Unlock()
	return mock.GetMembershipFunc(ctx, orgID, userID)
}

func (mock *membershipRepoMock) GetMembershipCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
} {
	mock.lockGetMembership.RLock()
	calls := mock.calls.GetMembership
	mock.lockGetMembership.RUnlock()
	return calls
}

func (mock *membershipRepoMock) Exists(ctx context.Context, orgID uuid.UUID) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("membershipRepoMock.ExistsFunc: method is nil but membershipRepo.Exists was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		OrgID uuid.UUID
	}{Ctx: ctx, OrgID: orgID}
	mock.lockExists.Lock()
	mock.calls.Exists = append(mock.calls.Exists, callInfo)
	mock.lockExists.Unlock()
	return mock.ExistsFunc(ctx, orgID)
}

func (mock *membershipRepoMock) ExistsCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockExists.RLock()
	calls := mock.calls.Exists
	mock.lockExists.RUnlock()
	return calls
}
