package workspace

import (
	"context"
	"sort"
	"sync"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/workspace"
	log "github.com/sirupsen/logrus"
)

// BusFactory 為工作區建立新的事件匯流排
type BusFactory func(workspaceID string) shared.EventBus

// PermissionResolver 解析 runtime 使用者的權限
type PermissionResolver func(d Descriptor) workspace.PermissionSet

// RuntimeInitializer runtime 首次建立時執行一次（例如模組訂閱）
//
// 在工廠鎖內執行，不可回呼工廠。
type RuntimeInitializer func(rt *WorkspaceRuntime)

// RuntimeMetrics runtime 數量指標
type RuntimeMetrics interface {
	RecordRuntimeDelta(ctx context.Context, delta int64)
}

// RuntimeProvider Use Case 取得工作區 runtime 的介面
type RuntimeProvider interface {
	RuntimeFor(workspaceID string) (*WorkspaceRuntime, error)
}

// DefaultPermissionResolver 擁有者全部權限，其他使用者為成員權限
func DefaultPermissionResolver(d Descriptor) workspace.PermissionSet {
	if d.UserID == "" || d.UserID == d.OwnerID {
		return workspace.OwnerPermissions()
	}
	return workspace.MemberPermissions()
}

// ===========================
// WorkspaceRuntimeFactory
// ===========================

// WorkspaceRuntimeFactory 工作區 ID → runtime 的唯一對照表
type WorkspaceRuntimeFactory struct {
	mu       sync.Mutex
	runtimes map[string]*WorkspaceRuntime

	busFactory   BusFactory
	permissions  PermissionResolver
	initializers []RuntimeInitializer
	logger       log.FieldLogger
	metrics      RuntimeMetrics
}

// FactoryOption 工廠選項
type FactoryOption func(*WorkspaceRuntimeFactory)

// WithPermissionResolver 指定權限解析
func WithPermissionResolver(r PermissionResolver) FactoryOption {
	return func(f *WorkspaceRuntimeFactory) {
		if r != nil {
			f.permissions = r
		}
	}
}

// WithRuntimeInitializer 追加 runtime 初始化鉤子，依加入順序執行
func WithRuntimeInitializer(init RuntimeInitializer) FactoryOption {
	return func(f *WorkspaceRuntimeFactory) {
		if init != nil {
			f.initializers = append(f.initializers, init)
		}
	}
}

// WithLogger 指定日誌
func WithLogger(logger log.FieldLogger) FactoryOption {
	return func(f *WorkspaceRuntimeFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRuntimeMetrics 指定指標
func WithRuntimeMetrics(m RuntimeMetrics) FactoryOption {
	return func(f *WorkspaceRuntimeFactory) {
		f.metrics = m
	}
}

// NewWorkspaceRuntimeFactory 建立工廠
func NewWorkspaceRuntimeFactory(busFactory BusFactory, opts ...FactoryOption) *WorkspaceRuntimeFactory {
	if busFactory == nil {
		panic("workspace: busFactory is required")
	}
	f := &WorkspaceRuntimeFactory{
		runtimes:    make(map[string]*WorkspaceRuntime),
		busFactory:  busFactory,
		permissions: DefaultPermissionResolver,
		logger:      log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRuntime 建立或返回既有 runtime
//
// 同一工作區 ID 重複呼叫返回同一實例：不建立第二條匯流排，既有訂閱不受影響。
func (f *WorkspaceRuntimeFactory) CreateRuntime(d Descriptor) *WorkspaceRuntime {
	if d.ID == "" {
		panic("workspace: descriptor ID is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if rt, ok := f.runtimes[d.ID]; ok {
		return rt
	}

	bus := f.busFactory(d.ID)
	rt := &WorkspaceRuntime{
		Context: WorkspaceContext{
			WorkspaceID: d.ID,
			Name:        d.Name,
			OwnerID:     d.OwnerID,
			UserID:      d.UserID,
			Permissions: f.permissions(d),
		},
		EventBus:  bus,
		moduleBus: NewModuleEventBus(d.ID, bus),
	}
	f.runtimes[d.ID] = rt

	for _, init := range f.initializers {
		init(rt)
	}

	if f.metrics != nil {
		f.metrics.RecordRuntimeDelta(context.Background(), 1)
	}
	f.logger.WithFields(log.Fields{
		"workspace_id": d.ID,
		"user_id":      d.UserID,
	}).Info("workspace runtime created")

	return rt
}

// GetRuntime 查詢 runtime，不存在時返回 (nil, false)，不會建立
func (f *WorkspaceRuntimeFactory) GetRuntime(workspaceID string) (*WorkspaceRuntime, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rt, ok := f.runtimes[workspaceID]
	return rt, ok
}

// RuntimeFor 查詢 runtime，不存在時返回 ErrRuntimeNotFound
func (f *WorkspaceRuntimeFactory) RuntimeFor(workspaceID string) (*WorkspaceRuntime, error) {
	rt, ok := f.GetRuntime(workspaceID)
	if !ok {
		return nil, shared.ErrRuntimeNotFound.WithContext("workspace_id", workspaceID)
	}
	return rt, nil
}

// EventBusFor 工作區的事件匯流排，不存在時返回 ErrRuntimeNotFound
func (f *WorkspaceRuntimeFactory) EventBusFor(workspaceID string) (shared.EventBus, error) {
	rt, err := f.RuntimeFor(workspaceID)
	if err != nil {
		return nil, err
	}
	return rt.EventBus, nil
}

// DestroyRuntime 清除匯流排並移除 runtime；不存在時為 no-op
func (f *WorkspaceRuntimeFactory) DestroyRuntime(workspaceID string) {
	f.mu.Lock()
	rt, ok := f.runtimes[workspaceID]
	if ok {
		delete(f.runtimes, workspaceID)
	}
	f.mu.Unlock()

	if !ok {
		return
	}
	f.release(rt)
}

// DestroyAll 銷毀所有 runtime
func (f *WorkspaceRuntimeFactory) DestroyAll() {
	f.mu.Lock()
	runtimes := f.runtimes
	f.runtimes = make(map[string]*WorkspaceRuntime)
	f.mu.Unlock()

	for _, rt := range runtimes {
		f.release(rt)
	}
}

func (f *WorkspaceRuntimeFactory) release(rt *WorkspaceRuntime) {
	rt.EventBus.Clear()

	if f.metrics != nil {
		f.metrics.RecordRuntimeDelta(context.Background(), -1)
	}
	f.logger.WithField("workspace_id", rt.WorkspaceID()).Info("workspace runtime destroyed")
}

// RuntimeCount 目前 runtime 數量
func (f *WorkspaceRuntimeFactory) RuntimeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.runtimes)
}

// WorkspaceIDs 排序後的工作區 ID 列表
func (f *WorkspaceRuntimeFactory) WorkspaceIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.runtimes))
	for id := range f.runtimes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
