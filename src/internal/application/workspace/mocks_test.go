package workspace

import (
	"sort"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/sirupsen/logrus/hooks/test"
)

// ===========================
// Mock Repository
// ===========================

type MockWorkspaceRepository struct {
	workspaces    map[string]*workspace.Workspace
	SaveCallCount int
	saveErr       error
}

func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{workspaces: make(map[string]*workspace.Workspace)}
}

func (m *MockWorkspaceRepository) Save(_ shared.TransactionContext, ws *workspace.Workspace) error {
	m.SaveCallCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.workspaces[ws.ID().String()]; ok {
		return workspace.ErrWorkspaceAlreadyExists
	}
	m.workspaces[ws.ID().String()] = ws
	return nil
}

func (m *MockWorkspaceRepository) FindByID(_ shared.TransactionContext, id workspace.WorkspaceID) (*workspace.Workspace, error) {
	ws, ok := m.workspaces[id.String()]
	if !ok {
		return nil, workspace.ErrWorkspaceNotFound.WithContext("workspace_id", id.String())
	}
	return ws, nil
}

func (m *MockWorkspaceRepository) FindByOwner(_ shared.TransactionContext, ownerID string) ([]*workspace.Workspace, error) {
	var out []*workspace.Workspace
	for _, ws := range m.workspaces {
		if ws.OwnerID() == ownerID {
			out = append(out, ws)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
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

func newBusFactory() BusFactory {
	logger, _ := test.NewNullLogger()
	return func(string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(eventbus.WithLogger(logger))
	}
}

func newTestFactory(opts ...FactoryOption) *WorkspaceRuntimeFactory {
	logger, _ := test.NewNullLogger()
	opts = append([]FactoryOption{WithLogger(logger)}, opts...)
	return NewWorkspaceRuntimeFactory(newBusFactory(), opts...)
}
