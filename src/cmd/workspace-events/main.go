// workspace-events 以設定組裝事件核心，跑一輪「建立工作區 → 建立任務 → 送品檢 → 判定」流程，
// 並將同一 correlation 下的事件以 JSON 信封逐行輸出。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jackyeh168/workspace_hub/src/internal/application/common"
	qcapp "github.com/jackyeh168/workspace_hub/src/internal/application/qc"
	taskapp "github.com/jackyeh168/workspace_hub/src/internal/application/task"
	wsapp "github.com/jackyeh168/workspace_hub/src/internal/application/workspace"
	"github.com/jackyeh168/workspace_hub/src/internal/bootstrap"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/qc"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/codec"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/config"
)

type flags struct {
	configPath string
	workspace  string
	owner      string
	task       string
	budget     string
	reason     string
	pass       bool
	logLevel   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var f flags

	flagSet := pflag.NewFlagSet("workspace-events", pflag.ContinueOnError)
	flagSet.StringVarP(&f.configPath, "config", "c", "", "path to YAML config (defaults apply when empty)")
	flagSet.StringVar(&f.workspace, "workspace", "Demo workspace", "workspace name")
	flagSet.StringVar(&f.owner, "owner", "owner-1", "workspace owner user ID")
	flagSet.StringVar(&f.task, "task", "Install windows", "task title")
	flagSet.StringVar(&f.budget, "budget", "300", "task budget")
	flagSet.StringVar(&f.reason, "reason", "frame misaligned", "QC failure reason")
	flagSet.BoolVar(&f.pass, "pass", false, "pass QC instead of failing it")
	flagSet.StringVar(&f.logLevel, "log-level", "", "override logging.level")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg, bootstrap.WithLogOutput(os.Stderr))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := scenario(ctx, app, f, out)
	if err := app.Close(context.Background()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.FromFile(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	return cfg, nil
}

func scenario(ctx context.Context, app *bootstrap.App, f flags, out io.Writer) error {
	ws := app.CreateWorkspace.Execute(ctx, wsapp.CreateWorkspaceCommand{Name: f.workspace, OwnerID: f.owner})
	if !ws.Success {
		return fmt.Errorf("create workspace: %s", ws.Error)
	}

	created := app.CreateTask.Execute(ctx, taskapp.CreateTaskCommand{
		WorkspaceID: ws.WorkspaceID,
		Title:       f.task,
		Budget:      f.budget,
		CreatedBy:   f.owner,
	})
	if !created.Success {
		return fmt.Errorf("create task: %s", created.Error)
	}

	submitted := app.SubmitForQC.Execute(ctx, taskapp.SubmitForQCCommand{
		WorkspaceID: ws.WorkspaceID,
		TaskID:      created.TaskID,
		SubmittedBy: f.owner,
	})
	if !submitted.Success {
		return fmt.Errorf("submit for qc: %s", submitted.Error)
	}

	req, err := pendingCheck(app, created.TaskID)
	if err != nil {
		return err
	}

	decided := decide(ctx, app, f, ws.WorkspaceID, req)
	if !decided.Success {
		return fmt.Errorf("decide qc: %s", decided.Error)
	}

	for _, e := range app.Store.GetEventsByCausality(req.CorrelationID()) {
		line, err := codec.Encode(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(line)); err != nil {
			return err
		}
	}
	return nil
}

func pendingCheck(app *bootstrap.App, taskID string) (shared.DomainEvent, error) {
	for _, e := range app.Store.GetEventsByType(qc.EventQCRequested) {
		if p, ok := e.Data().(qc.QCRequestedPayload); ok && p.TaskID == taskID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no qc check requested for task %s", taskID)
}

func decide(ctx context.Context, app *bootstrap.App, f flags, workspaceID string, req shared.DomainEvent) common.Result {
	if f.pass {
		return app.PassQC.Execute(ctx, qcapp.PassQCCommand{
			WorkspaceID: workspaceID,
			CheckID:     req.AggregateID(),
			ReviewerID:  f.owner,
			Causation:   shared.CausationOf(req),
		})
	}
	return app.FailQC.Execute(ctx, qcapp.FailQCCommand{
		WorkspaceID: workspaceID,
		CheckID:     req.AggregateID(),
		ReviewerID:  f.owner,
		Reason:      f.reason,
		Causation:   shared.CausationOf(req),
	})
}
