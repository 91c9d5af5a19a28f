package member

import (
	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/member"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventstore"
	"github.com/sirupsen/logrus/hooks/test"
)

// ===========================
// Mock MemberRepository
// ===========================

type MockMemberRepository struct {
	members         map[string]*member.Member // key: workspaceID + "/" + userID
	SaveCallCount   int
	UpdateCallCount int
	findErr         error
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{members: make(map[string]*member.Member)}
}

func memberKey(workspaceID, userID string) string {
	return workspaceID + "/" + userID
}

func (m *MockMemberRepository) Save(_ shared.TransactionContext, mem *member.Member) error {
	m.SaveCallCount++
	key := memberKey(mem.WorkspaceID(), mem.UserID())
	if _, ok := m.members[key]; ok {
		return member.ErrMemberAlreadyExists
	}
	m.members[key] = mem
	return nil
}

func (m *MockMemberRepository) Update(_ shared.TransactionContext, mem *member.Member) error {
	m.UpdateCallCount++
	key := memberKey(mem.WorkspaceID(), mem.UserID())
	if _, ok := m.members[key]; !ok {
		return member.ErrMemberNotFound
	}
	m.members[key] = mem
	return nil
}

func (m *MockMemberRepository) FindByUser(_ shared.TransactionContext, workspaceID, userID string) (*member.Member, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	mem, ok := m.members[memberKey(workspaceID, userID)]
	if !ok {
		return nil, member.ErrMemberNotFound.WithContext("user_id", userID)
	}
	return mem, nil
}

func (m *MockMemberRepository) FindByWorkspace(_ shared.TransactionContext, workspaceID string) ([]*member.Member, error) {
	var out []*member.Member
	for _, mem := range m.members {
		if mem.WorkspaceID() == workspaceID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *MockMemberRepository) ExistsByUser(_ shared.TransactionContext, workspaceID, userID string) (bool, error) {
	_, ok := m.members[memberKey(workspaceID, userID)]
	return ok, nil
}

// seed 直接放入已存在的成員
func (m *MockMemberRepository) seed(workspaceID, userID string, role member.Role) *member.Member {
	mem, err := member.ReconstructMember(member.ReconstructParams{
		MemberID:    member.NewMemberID(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		DisplayName: "Seeded " + userID,
		Role:        role,
		Version:     1,
	})
	if err != nil {
		panic(err)
	}
	m.members[memberKey(workspaceID, userID)] = mem
	return mem
}

// ===========================
// Mock TransactionManager
// ===========================

type MockTransactionManager struct {
	InTransactionCallCount int
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	return fn(nil)
}

// ===========================
// 測試輔助
// ===========================

const (
	testWorkspaceID = "ws-1"
	testOwnerID     = "owner-1"
)

type memberFixture struct {
	repo       *MockMemberRepository
	tx         *MockTransactionManager
	factory    *wsapp.WorkspaceRuntimeFactory
	store      *eventstore.InMemoryEventStore
	add        *AddMemberUseCase
	changeRole *ChangeMemberRoleUseCase
}

func newMemberFixture() *memberFixture {
	logger, _ := test.NewNullLogger()
	busFactory := func(string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	}

	f := &memberFixture{
		repo:  NewMockMemberRepository(),
		tx:    &MockTransactionManager{},
		store: eventstore.NewInMemoryEventStore(eventstore.WithLogger(logger)),
	}
	f.factory = wsapp.NewWorkspaceRuntimeFactory(busFactory,
		wsapp.WithLogger(logger),
		wsapp.WithPermissionResolver(PermissionResolver(f.repo, logger)),
	)
	runner := common.NewRunner(logger, nil)
	f.add = NewAddMemberUseCase(f.repo, f.tx, f.factory, f.store, runner)
	f.changeRole = NewChangeMemberRoleUseCase(f.repo, f.tx, f.factory, f.store, runner)
	return f
}

// openRuntime 以指定使用者開啟測試工作區
func (f *memberFixture) openRuntime(userID string) *wsapp.WorkspaceRuntime {
	return f.factory.CreateRuntime(wsapp.Descriptor{
		ID:      testWorkspaceID,
		Name:    "Site A",
		OwnerID: testOwnerID,
		UserID:  userID,
	})
}
