package access

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	GetMembershipFunc func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Membership, error)

	calls struct {
		GetMembership []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
		}
	}
	lockGetMembership sync.RWMutex
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
