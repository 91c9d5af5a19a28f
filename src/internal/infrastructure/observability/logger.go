// Package observability 提供事件核心的結構化日誌、OpenTelemetry 指標與追蹤。
//
// 所有功能皆可關閉，關閉時使用 Noop 實作。
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	log "github.com/sirupsen/logrus"
)

// 日誌格式
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewLogger 依等級與格式建立 logrus Logger
//
// level 接受 logrus 等級字串（debug/info/warn/error...），格式為 text 或 json。
func NewLogger(level, format string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := log.New()
	logger.SetLevel(lvl)
	if out != nil {
		logger.SetOutput(out)
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	return logger, nil
}

// OrDefault nil 時返回 logrus 標準 Logger
func OrDefault(logger log.FieldLogger) log.FieldLogger {
	if logger == nil {
		return log.StandardLogger()
	}
	return logger
}

// EventFields 事件的標準日誌欄位
func EventFields(event shared.DomainEvent) log.Fields {
	if event == nil {
		return log.Fields{}
	}
	return log.Fields{
		"event_id":       event.EventID(),
		"event_type":     event.EventType(),
		"aggregate_id":   event.AggregateID(),
		"workspace_id":   event.WorkspaceID(),
		"correlation_id": event.CorrelationID(),
	}
}
