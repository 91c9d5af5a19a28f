package task

import (
	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/task"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventstore"
	"github.com/sirupsen/logrus/hooks/test"
)

// ===========================
// Mock Repository
// ===========================

type MockTaskRepository struct {
	tasks           map[string]*task.Task
	SaveCallCount   int
	UpdateCallCount int
	saveErr         error
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{tasks: make(map[string]*task.Task)}
}

func (m *MockTaskRepository) Save(_ shared.TransactionContext, t *task.Task) error {
	m.SaveCallCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.tasks[t.ID().String()]; ok {
		return task.ErrTaskAlreadyExists
	}
	m.tasks[t.ID().String()] = t
	return nil
}

func (m *MockTaskRepository) FindByID(_ shared.TransactionContext, id task.TaskID) (*task.Task, error) {
	t, ok := m.tasks[id.String()]
	if !ok {
		return nil, task.ErrTaskNotFound.WithContext("task_id", id.String())
	}
	return t, nil
}

func (m *MockTaskRepository) Update(_ shared.TransactionContext, t *task.Task) error {
	m.UpdateCallCount++
	if _, ok := m.tasks[t.ID().String()]; !ok {
		return task.ErrTaskNotFound
	}
	m.tasks[t.ID().String()] = t
	return nil
}

func (m *MockTaskRepository) FindByWorkspace(_ shared.TransactionContext, workspaceID string) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range m.tasks {
		if t.WorkspaceID() == workspaceID {
			out = append(out, t)
		}
	}
	return out, nil
}

// seed 直接放入已存在的任務
func (m *MockTaskRepository) seed(workspaceID string, status task.Status) *task.Task {
	t := task.ReconstructTask(task.ReconstructParams{
		ID:          task.NewTaskID(),
		WorkspaceID: workspaceID,
		Title:       "Pour foundation",
		Status:      status,
		CreatedBy:   "owner-1",
	})
	m.tasks[t.ID().String()] = t
	return t
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

type taskFixture struct {
	repo    *MockTaskRepository
	tx      *MockTransactionManager
	factory *wsapp.WorkspaceRuntimeFactory
	store   *eventstore.InMemoryEventStore
	runner  common.Runner
}

func newTaskFixture(opts ...wsapp.FactoryOption) *taskFixture {
	logger, _ := test.NewNullLogger()
	busFactory := func(string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	}
	opts = append([]wsapp.FactoryOption{wsapp.WithLogger(logger)}, opts...)

	return &taskFixture{
		repo:    NewMockTaskRepository(),
		tx:      &MockTransactionManager{},
		factory: wsapp.NewWorkspaceRuntimeFactory(busFactory, opts...),
		store:   eventstore.NewInMemoryEventStore(eventstore.WithLogger(logger)),
		runner:  common.NewRunner(logger, nil),
	}
}

// openRuntime 以指定使用者開啟測試工作區
func (f *taskFixture) openRuntime(userID string) *wsapp.WorkspaceRuntime {
	return f.factory.CreateRuntime(wsapp.Descriptor{
		ID:      testWorkspaceID,
		Name:    "Site A",
		OwnerID: testOwnerID,
		UserID:  userID,
	})
}
