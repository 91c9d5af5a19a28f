package common

import (
	"context"
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// UseCaseMetrics Use Case 執行指標
type UseCaseMetrics interface {
	RecordUseCase(ctx context.Context, useCase string, success bool)
}

type noopUseCaseMetrics struct{}

func (noopUseCaseMetrics) RecordUseCase(context.Context, string, bool) {}

// Runner 執行 Use Case 主體並轉換為 Result
//
// 錯誤與 panic 都在此攔截，記錄日誌與指標後轉為 Failed。
type Runner struct {
	logger  log.FieldLogger
	metrics UseCaseMetrics
}

// NewRunner 建立 Runner；參數可為 nil
func NewRunner(logger log.FieldLogger, metrics UseCaseMetrics) Runner {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if metrics == nil {
		metrics = noopUseCaseMetrics{}
	}
	return Runner{logger: logger, metrics: metrics}
}

// Run 執行 fn
func (r Runner) Run(ctx context.Context, useCase string, fields log.Fields, fn func() error) (result Result) {
	if r.logger == nil {
		r = NewRunner(nil, nil)
	}

	entry := r.logger.WithField("use_case", useCase).WithFields(fields)

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("%s panicked: %v", useCase, p)
			entry.WithError(err).WithField("stack", string(debug.Stack())).Error("use case panicked")
			result = Failed(err)
		}
		r.metrics.RecordUseCase(ctx, useCase, result.Success)
	}()

	if err := fn(); err != nil {
		entry.WithError(err).Warn("use case failed")
		return Failed(err)
	}

	entry.Debug("use case succeeded")
	return Succeeded()
}
