// Package bootstrap 由設定組裝完整的事件核心
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	issueapp "github.com/jackyeh168/workspace_hub/src/internal/application/issue"
	memberapp "github.com/jackyeh168/workspace_hub/src/internal/application/member"
	qcapp "github.com/jackyeh168/workspace_hub/src/internal/application/qc"
	taskapp "github.com/jackyeh168/workspace_hub/src/internal/application/task"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/config"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventbus"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/eventstore"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/relay"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

// ===========================
// App
// ===========================

// App 組裝完成的應用程式
//
// 每個工作區 runtime 建立時依序掛上：事件歸檔、Redis 轉送（皆為全域訂閱），
// 以及 QC 排程、任務狀態推進、QC 問題回饋三個模組訂閱者。
// runtime 權限由成員角色解析（擁有者全部權限）。
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Store    *eventstore.InMemoryEventStore
	Runtimes *wsapp.WorkspaceRuntimeFactory
	DB       *gorm.DB
	Archive  *persistence.EventArchive // archive.enabled 為 false 時為 nil
	Relay    *relay.RedisRelay         // relay.enabled 為 false 時為 nil

	Workspaces   *persistence.GORMWorkspaceRepository
	Tasks        *persistence.GORMTaskRepository
	Checks       *persistence.GORMCheckRepository
	Issues       *persistence.GORMIssueRepository
	Members      *persistence.GORMMemberRepository
	Transactions *persistence.GORMTransactionManager

	CreateWorkspace *wsapp.CreateWorkspaceUseCase
	SwitchWorkspace *wsapp.SwitchWorkspaceUseCase
	CreateTask      *taskapp.CreateTaskUseCase
	SubmitForQC     *taskapp.SubmitForQCUseCase
	PassQC          *qcapp.PassQCUseCase
	FailQC          *qcapp.FailQCUseCase
	CreateIssue     *issueapp.CreateIssueUseCase
	ResolveIssue    *issueapp.ResolveIssueUseCase
	AddMember       *memberapp.AddMemberUseCase
	ChangeRole      *memberapp.ChangeMemberRoleUseCase

	submissions *qcapp.SubmissionSubscriber
	outcomes    *taskapp.QCOutcomeSubscriber
	feedback    *issueapp.QCFeedbackSubscriber

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	redis          *redis.Client
	ownsRedis      bool
}

// Option 組裝選項
type Option func(*options)

type options struct {
	logOutput    io.Writer
	redisClient  *redis.Client
	metricReader sdkmetric.Reader
	spanExporter sdktrace.SpanExporter
}

// WithLogOutput 日誌輸出目標
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithRedisClient 使用外部建立的 Redis client，Close 時不關閉
func WithRedisClient(c *redis.Client) Option {
	return func(o *options) { o.redisClient = c }
}

// WithMetricReader 掛上指標 reader（例如 exporter 或測試用 ManualReader）
func WithMetricReader(r sdkmetric.Reader) Option {
	return func(o *options) { o.metricReader = r }
}

// WithSpanExporter 以同步方式匯出 span
func WithSpanExporter(e sdktrace.SpanExporter) Option {
	return func(o *options) { o.spanExporter = e }
}

// New 依設定組裝 App
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format, o.logOutput)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}

	metrics, spans, err := app.setupTelemetry(o)
	if err != nil {
		return nil, err
	}

	app.Store = newStore(cfg, logger, metrics)

	if err := app.setupPersistence(cfg); err != nil {
		_ = app.Close(context.Background())
		return nil, err
	}

	if cfg.Relay.Enabled {
		app.redis, app.ownsRedis = o.redisClient, false
		if app.redis == nil {
			app.redis = redis.NewClient(&redis.Options{Addr: cfg.Relay.RedisAddr})
			app.ownsRedis = true
		}
		app.Relay = relay.NewRedisRelay(app.redis, cfg.Relay.ChannelPrefix, logger)
	}

	busFactory := func(workspaceID string) shared.EventBus {
		return eventbus.NewInMemoryEventBus(
			eventbus.WithLogger(logger.WithField("workspace_id", workspaceID)),
			eventbus.WithMetrics(metrics),
			eventbus.WithSpanManager(spans),
		)
	}
	app.Runtimes = wsapp.NewWorkspaceRuntimeFactory(busFactory,
		wsapp.WithLogger(logger),
		wsapp.WithRuntimeMetrics(metrics),
		wsapp.WithPermissionResolver(memberapp.PermissionResolver(app.Members, logger)),
		wsapp.WithRuntimeInitializer(app.initRuntime),
	)

	app.wireUseCases(common.NewRunner(logger, metrics))

	logger.WithFields(log.Fields{
		"archive": cfg.Archive.Enabled,
		"relay":   cfg.Relay.Enabled,
		"metrics": cfg.Metrics.Enabled,
		"tracing": cfg.Tracing.Enabled,
	}).Info("workspace event core ready")

	return app, nil
}

func (a *App) setupTelemetry(o *options) (observability.MetricsRecorder, observability.SpanManager, error) {
	var metrics observability.MetricsRecorder = observability.NoopMetrics{}
	if a.Config.Metrics.Enabled {
		var providerOpts []sdkmetric.Option
		if o.metricReader != nil {
			providerOpts = append(providerOpts, sdkmetric.WithReader(o.metricReader))
		}
		a.meterProvider = sdkmetric.NewMeterProvider(providerOpts...)

		recorder, err := observability.NewMetricsRecorder(a.meterProvider)
		if err != nil {
			return nil, nil, fmt.Errorf("create metrics recorder: %w", err)
		}
		metrics = recorder
	}

	var spans observability.SpanManager = observability.NoopSpanManager{}
	if a.Config.Tracing.Enabled {
		var providerOpts []sdktrace.TracerProviderOption
		if o.spanExporter != nil {
			providerOpts = append(providerOpts, sdktrace.WithSyncer(o.spanExporter))
		}
		a.tracerProvider = sdktrace.NewTracerProvider(providerOpts...)
		spans = observability.NewSpanManager(a.tracerProvider)
	}

	return metrics, spans, nil
}

func newStore(cfg config.Config, logger log.FieldLogger, metrics observability.MetricsRecorder) *eventstore.InMemoryEventStore {
	opts := []eventstore.Option{
		eventstore.WithLogger(logger),
		eventstore.WithMetrics(metrics),
	}
	if cfg.Store.ValidateCausation {
		opts = append(opts, eventstore.WithCausationValidation())
	}
	return eventstore.NewInMemoryEventStore(opts...)
}

func (a *App) setupPersistence(cfg config.Config) error {
	db, err := persistence.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	a.DB = db

	a.Workspaces = persistence.NewWorkspaceRepository(db)
	a.Tasks = persistence.NewTaskRepository(db)
	a.Checks = persistence.NewCheckRepository(db)
	a.Issues = persistence.NewIssueRepository(db)
	a.Members = persistence.NewMemberRepository(db)
	a.Transactions = persistence.NewGORMTransactionManager(db)

	if cfg.Archive.Enabled {
		a.Archive = persistence.NewEventArchive(db, a.Logger)
	}
	return nil
}

func (a *App) wireUseCases(runner common.Runner) {
	a.CreateWorkspace = wsapp.NewCreateWorkspaceUseCase(a.Workspaces, a.Transactions, a.Runtimes, a.Store, runner)
	a.SwitchWorkspace = wsapp.NewSwitchWorkspaceUseCase(a.Workspaces, a.Runtimes, a.Store, runner)
	a.CreateTask = taskapp.NewCreateTaskUseCase(a.Tasks, a.Transactions, a.Runtimes, a.Store, runner)
	a.SubmitForQC = taskapp.NewSubmitForQCUseCase(a.Tasks, a.Transactions, a.Runtimes, a.Store, runner)
	a.PassQC = qcapp.NewPassQCUseCase(a.Checks, a.Transactions, a.Runtimes, a.Store, runner)
	a.FailQC = qcapp.NewFailQCUseCase(a.Checks, a.Transactions, a.Runtimes, a.Store, runner)
	a.CreateIssue = issueapp.NewCreateIssueUseCase(a.Issues, a.Transactions, a.Runtimes, a.Store, runner)
	a.ResolveIssue = issueapp.NewResolveIssueUseCase(a.Issues, a.Transactions, a.Runtimes, a.Store, runner)
	a.AddMember = memberapp.NewAddMemberUseCase(a.Members, a.Transactions, a.Runtimes, a.Store, runner)
	a.ChangeRole = memberapp.NewChangeMemberRoleUseCase(a.Members, a.Transactions, a.Runtimes, a.Store, runner)

	a.submissions = qcapp.NewSubmissionSubscriber(a.Checks, a.Transactions, a.Store, runner)
	a.outcomes = taskapp.NewQCOutcomeSubscriber(a.Tasks, a.Transactions, a.Store, runner)
	a.feedback = issueapp.NewQCFeedbackSubscriber(a.CreateIssue)
}

// initRuntime 在工廠鎖內執行，只做訂閱，不可回呼工廠
func (a *App) initRuntime(rt *wsapp.WorkspaceRuntime) {
	if a.Archive != nil {
		a.Archive.Attach(rt.EventBus)
	}
	if a.Relay != nil {
		a.Relay.Attach(rt.EventBus)
	}

	bus := rt.ModuleBus()
	a.submissions.Register(bus)
	a.outcomes.Register(bus)
	a.feedback.Register(bus)
}

// Close 銷毀所有 runtime 並釋放外部資源
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Runtimes != nil {
		a.Runtimes.DestroyAll()
	}
	if a.redis != nil && a.ownsRedis {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, persistence.Close(a.DB))
	}
	if a.tracerProvider != nil {
		errs = append(errs, a.tracerProvider.Shutdown(ctx))
	}
	if a.meterProvider != nil {
		errs = append(errs, a.meterProvider.Shutdown(ctx))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close app: %w", err)
	}
	a.Logger.Info("workspace event core stopped")
	return nil
}
