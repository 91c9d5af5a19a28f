package qc

import (
	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventstore"
	"github.com/sirupsen/logrus/hooks/test"
)

// ===========================
// Mock Repository
// ===========================

type MockCheckRepository struct {
	checks          map[string]*qc.Check
	SaveCallCount   int
	UpdateCallCount int
	saveErr         error
}

func NewMockCheckRepository() *MockCheckRepository {
	return &MockCheckRepository{checks: make(map[string]*qc.Check)}
}

func (m *MockCheckRepository) Save(_ shared.TransactionContext, c *qc.Check) error {
	m.SaveCallCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.checks[c.ID().String()] = c
	return nil
}

func (m *MockCheckRepository) FindByID(_ shared.TransactionContext, id qc.CheckID) (*qc.Check, error) {
	c, ok := m.checks[id.String()]
	if !ok {
		return nil, qc.ErrCheckNotFound.WithContext("check_id", id.String())
	}
	return c, nil
}

func (m *MockCheckRepository) Update(_ shared.TransactionContext, c *qc.Check) error {
	m.UpdateCallCount++
	m.checks[c.ID().String()] = c
	return nil
}

func (m *MockCheckRepository) FindByTask(_ shared.TransactionContext, taskID string) ([]*qc.Check, error) {
	var out []*qc.Check
	for _, c := range m.checks {
		if c.TaskID() == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCheckRepository) seedPending(workspaceID, taskID string) *qc.Check {
	c := qc.ReconstructCheck(qc.ReconstructParams{
		ID:          qc.NewCheckID(),
		WorkspaceID: workspaceID,
		TaskID:      taskID,
		Status:      qc.StatusPending,
	})
	m.checks[c.ID().String()] = c
	return c
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

type qcFixture struct {
	repo    *MockCheckRepository
	tx      *MockTransactionManager
	factory *wsapp.WorkspaceRuntimeFactory
	store   *eventstore.InMemoryEventStore
	runner  common.Runner
}

func newQCFixture() *qcFixture {
	logger, _ := test.NewNullLogger()
	busFactory := func(string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	}
	return &qcFixture{
		repo:    NewMockCheckRepository(),
		tx:      &MockTransactionManager{},
		factory: wsapp.NewWorkspaceRuntimeFactory(busFactory, wsapp.WithLogger(logger)),
		store:   eventstore.NewInMemoryEventStore(eventstore.WithLogger(logger)),
		runner:  common.NewRunner(logger, nil),
	}
}

func (f *qcFixture) openRuntime(userID string) *wsapp.WorkspaceRuntime {
	return f.factory.CreateRuntime(wsapp.Descriptor{
		ID:      testWorkspaceID,
		Name:    "Site A",
		OwnerID: testOwnerID,
		UserID:  userID,
	})
}
