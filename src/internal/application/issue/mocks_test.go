package issue

import (
	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/issue"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventstore"
	"github.com/sirupsen/logrus/hooks/test"
)

// ===========================
// Mock Repository
// ===========================

type MockIssueRepository struct {
	issues          map[string]*issue.Issue
	SaveCallCount   int
	UpdateCallCount int
}

func NewMockIssueRepository() *MockIssueRepository {
	return &MockIssueRepository{issues: make(map[string]*issue.Issue)}
}

func (m *MockIssueRepository) Save(_ shared.TransactionContext, i *issue.Issue) error {
	m.SaveCallCount++
	if _, ok := m.issues[i.ID().String()]; ok {
		return issue.ErrIssueAlreadyExists
	}
	m.issues[i.ID().String()] = i
	return nil
}

func (m *MockIssueRepository) FindByID(_ shared.TransactionContext, id issue.IssueID) (*issue.Issue, error) {
	i, ok := m.issues[id.String()]
	if !ok {
		return nil, issue.ErrIssueNotFound.WithContext("issue_id", id.String())
	}
	return i, nil
}

func (m *MockIssueRepository) Update(_ shared.TransactionContext, i *issue.Issue) error {
	m.UpdateCallCount++
	m.issues[i.ID().String()] = i
	return nil
}

func (m *MockIssueRepository) FindOpenByTask(_ shared.TransactionContext, taskID string) ([]*issue.Issue, error) {
	var out []*issue.Issue
	for _, i := range m.issues {
		if i.TaskID() == taskID && i.Status() == issue.StatusOpen {
			out = append(out, i)
		}
	}
	return out, nil
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

type issueFixture struct {
	repo    *MockIssueRepository
	tx      *MockTransactionManager
	factory *wsapp.WorkspaceRuntimeFactory
	store   *eventstore.InMemoryEventStore
	create  *CreateIssueUseCase
	resolve *ResolveIssueUseCase
}

func newIssueFixture(opts ...wsapp.FactoryOption) *issueFixture {
	logger, _ := test.NewNullLogger()
	busFactory := func(string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	}
	runner := common.NewRunner(logger, nil)
	opts = append([]wsapp.FactoryOption{wsapp.WithLogger(logger)}, opts...)

	f := &issueFixture{
		repo:    NewMockIssueRepository(),
		tx:      &MockTransactionManager{},
		factory: wsapp.NewWorkspaceRuntimeFactory(busFactory, opts...),
		store:   eventstore.NewInMemoryEventStore(eventstore.WithLogger(logger), eventstore.WithCausationValidation()),
	}
	f.create = NewCreateIssueUseCase(f.repo, f.tx, f.factory, f.store, runner)
	f.resolve = NewResolveIssueUseCase(f.repo, f.tx, f.factory, f.store, runner)
	return f
}

func (f *issueFixture) openRuntime(userID string) *wsapp.WorkspaceRuntime {
	return f.factory.CreateRuntime(wsapp.Descriptor{
		ID:      testWorkspaceID,
		Name:    "Site A",
		OwnerID: testOwnerID,
		UserID:  userID,
	})
}
