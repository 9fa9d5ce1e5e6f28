package organization

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var _ orgRepo = &orgRepoMock{}

type orgRepoMock struct {
	CreateFunc           func(ctx context.Context, org *domain.Organization) error
	GetForUserFunc       func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Organization, error)
	ListForUserFunc      func(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	ExistsFunc           func(ctx context.Context, orgID uuid.UUID) (bool, error)
	UpdateFunc           func(ctx context.Context, orgID uuid.UUID, params domain.OrganizationUpdateParams) (*domain.Organization, error)
	DeleteFunc           func(ctx context.Context, orgID uuid.UUID) error
	CountOwnedFunc       func(ctx context.Context, userID uuid.UUID) (int, error)
	AddMemberFunc        func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error)
	GetMembershipFunc    func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Membership, error)
	ListMembersFunc      func(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	UpdateMemberRoleFunc func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error)
	RemoveMemberFunc     func(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) error
	LockOwnersFunc       func(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Org *domain.Organization
		}
		GetForUser []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
		}
		ListForUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Exists []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
		Update []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			Params domain.OrganizationUpdateParams
		}
		Delete []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
		CountOwned []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		AddMember []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
			Role   domain.MemberRole
		}
		GetMembership []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
		}
		ListMembers []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
		UpdateMemberRole []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
			Role   domain.MemberRole
		}
		RemoveMember []struct {
			Ctx    context.Context
			OrgID  uuid.UUID
			UserID uuid.UUID
		}
		LockOwners []struct {
			Ctx   context.Context
			OrgID uuid.UUID
		}
	}
	lockCreate           sync.RWMutex
	lockGetForUser       sync.RWMutex
	lockListForUser      sync.RWMutex
	lockExists           sync.RWMutex
	lockUpdate           sync.RWMutex
	lockDelete           sync.RWMutex
	lockCountOwned       sync.RWMutex
	lockAddMember        sync.RWMutex
	lockGetMembership    sync.RWMutex
	lockListMembers      sync.RWMutex
	lockUpdateMemberRole sync.RWMutex
	lockRemoveMember     sync.RWMutex
	lockLockOwners       sync.RWMutex
}

func (mock *orgRepoMock) Create(ctx context.Context, org *domain.Organization) error {
	if mock.CreateFunc == nil {
		panic("orgRepoMock.CreateFunc: method is nil but orgRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Org *domain.Organization
	}{Ctx: ctx, Org: org}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, org)
}

func (mock *orgRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Org *domain.Organization
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *orgRepoMock) GetForUser(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Organization, error) {
	if mock.GetForUserFunc == nil {
		panic("orgRepoMock.GetForUserFunc: method is nil but orgRepo.GetForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, OrgID: orgID, UserID: userID}
	mock.lockGetForUser.Lock()
	mock.calls.GetForUser = append(mock.calls.GetForUser, callInfo)
	mock.lockGetForUser.Unlock()
	return mock.GetForUserFunc(ctx, orgID, userID)
}

func (mock *orgRepoMock) GetForUserCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
} {
	mock.lockGetForUser.RLock()
	calls := mock.calls.GetForUser
	mock.lockGetForUser.RUnlock()
	return calls
}

func (mock *orgRepoMock) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	if mock.ListForUserFunc == nil {
		panic("orgRepoMock.ListForUserFunc: method is nil but orgRepo.ListForUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListForUser.Lock()
	mock.calls.ListForUser = append(mock.calls.ListForUser, callInfo)
	mock.lockListForUser.Unlock()
	return mock.ListForUserFunc(ctx, userID)
}

func (mock *orgRepoMock) ListForUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListForUser.RLock()
	calls := mock.calls.ListForUser
	mock.lockListForUser.RUnlock()
	return calls
}

func (mock *orgRepoMock) Exists(ctx context.Context, orgID uuid.UUID) (bool, error) {
	if mock.ExistsFunc == nil {
		panic("orgRepoMock.ExistsFunc: method is nil but orgRepo.Exists was just called")
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

func (mock *orgRepoMock) ExistsCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockExists.RLock()
	calls := mock.calls.Exists
	mock.lockExists.RUnlock()
	return calls
}

func (mock *orgRepoMock) Update(ctx context.Context, orgID uuid.UUID, params domain.OrganizationUpdateParams) (*domain.Organization, error) {
	if mock.UpdateFunc == nil {
		panic("orgRepoMock.UpdateFunc: method is nil but orgRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		Params domain.OrganizationUpdateParams
	}{Ctx: ctx, OrgID: orgID, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, orgID, params)
}

func (mock *orgRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	Params domain.OrganizationUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *orgRepoMock) Delete(ctx context.Context, orgID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("orgRepoMock.DeleteFunc: method is nil but orgRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		OrgID uuid.UUID
	}{Ctx: ctx, OrgID: orgID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, orgID)
}

func (mock *orgRepoMock) DeleteCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *orgRepoMock) CountOwned(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountOwnedFunc == nil {
		panic("orgRepoMock.CountOwnedFunc: method is nil but orgRepo.CountOwned was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountOwned.Lock()
	mock.calls.CountOwned = append(mock.calls.CountOwned, callInfo)
	mock.lockCountOwned.Unlock()
	return mock.CountOwnedFunc(ctx, userID)
}

func (mock *orgRepoMock) CountOwnedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountOwned.RLock()
	calls := mock.calls.CountOwned
	mock.lockCountOwned.RUnlock()
	return calls
}

func (mock *orgRepoMock) AddMember(ctx context.Context, orgID uuid.UUID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error) {
	if mock.AddMemberFunc == nil {
		panic("orgRepoMock.AddMemberFunc: method is nil but orgRepo.AddMember was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		UserID uuid.UUID
		Role   domain.MemberRole
	}{Ctx: ctx, OrgID: orgID, UserID: userID, Role: role}
	mock.lockAddMember.Lock()
	mock.calls.AddMember = append(mock.calls.AddMember, callInfo)
	mock.lockAddMember.Unlock()
	return mock.AddMemberFunc(ctx, orgID, userID, role)
}

func (mock *orgRepoMock) AddMemberCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
	Role   domain.MemberRole
} {
	mock.lockAddMember.RLock()
	calls := mock.calls.AddMember
	mock.lockAddMember.RUnlock()
	return calls
}

func (mock *orgRepoMock) GetMembership(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) (*domain.Membership, error) {
	if mock.GetMembershipFunc == nil {
		panic("orgRepoMock.GetMembershipFunc: method is nil but orgRepo.GetMembership was just called")
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

func (mock *orgRepoMock) GetMembershipCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
} {
	mock.lockGetMembership.RLock()
	calls := mock.calls.GetMembership
	mock.lockGetMembership.RUnlock()
	return calls
}

func (mock *orgRepoMock) ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	if mock.ListMembersFunc == nil {
		panic("orgRepoMock.ListMembersFunc: method is nil but orgRepo.ListMembers was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		OrgID uuid.UUID
	}{Ctx: ctx, OrgID: orgID}
	mock.lockListMembers.Lock()
	mock.calls.ListMembers = append(mock.calls.ListMembers, callInfo)
	mock.lockListMembers.Unlock()
	return mock.ListMembersFunc(ctx, orgID)
}

func (mock *orgRepoMock) ListMembersCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockListMembers.RLock()
	calls := mock.calls.ListMembers
	mock.lockListMembers.RUnlock()
	return calls
}

func (mock *orgRepoMock) UpdateMemberRole(ctx context.Context, orgID uuid.UUID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error) {
	if mock.UpdateMemberRoleFunc == nil {
		panic("orgRepoMock.UpdateMemberRoleFunc: method is nil but orgRepo.UpdateMemberRole was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		UserID uuid.UUID
		Role   domain.MemberRole
	}{Ctx: ctx, OrgID: orgID, UserID: userID, Role: role}
	mock.lockUpdateMemberRole.Lock()
	mock.calls.UpdateMemberRole = append(mock.calls.UpdateMemberRole, callInfo)
	mock.lockUpdateMemberRole.Unlock()
	return mock.UpdateMemberRoleFunc(ctx, orgID, userID, role)
}

func (mock *orgRepoMock) UpdateMemberRoleCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
	Role   domain.MemberRole
} {
	mock.lockUpdateMemberRole.RLock()
	calls := mock.calls.UpdateMemberRole
	mock.lockUpdateMemberRole.RUnlock()
	return calls
}

func (mock *orgRepoMock) RemoveMember(ctx context.Context, orgID uuid.UUID, userID uuid.UUID) error {
	if mock.RemoveMemberFunc == nil {
		panic("orgRepoMock.RemoveMemberFunc: method is nil but orgRepo.RemoveMember was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		OrgID  uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, OrgID: orgID, UserID: userID}
	mock.lockRemoveMember.Lock()
	mock.calls.RemoveMember = append(mock.calls.RemoveMember, callInfo)
	mock.lockRemoveMember.Unlock()
	return mock.RemoveMemberFunc(ctx, orgID, userID)
}

func (mock *orgRepoMock) RemoveMemberCalls() []struct {
	Ctx    context.Context
	OrgID  uuid.UUID
	UserID uuid.UUID
} {
	mock.lockRemoveMember.RLock()
	calls := mock.calls.RemoveMember
	mock.lockRemoveMember.RUnlock()
	return calls
}

func (mock *orgRepoMock) LockOwners(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	if mock.LockOwnersFunc == nil {
		panic("orgRepoMock.LockOwnersFunc: method is nil but orgRepo.LockOwners was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		OrgID uuid.UUID
	}{Ctx: ctx, OrgID: orgID}
	mock.lockLockOwners.Lock()
	mock.calls.LockOwners = append(mock.calls.LockOwners, callInfo)
	mock.lockLockOwners.Unlock()
	return mock.LockOwnersFunc(ctx, orgID)
}

func (mock *orgRepoMock) LockOwnersCalls() []struct {
	Ctx   context.Context
	OrgID uuid.UUID
} {
	mock.lockLockOwners.RLock()
	calls := mock.calls.LockOwners
	mock.lockLockOwners.RUnlock()
	return calls
}
