package config

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Fields 는 구조화 로그를 위한 공통 필드 타입이다.
type Fields map[string]any

// Logger 는 애플리케이션 전역 로거다.
// InitLogger 가 호출되지 않더라도 기본 info 레벨로 동작하도록 초기화한다.
var Logger = NewLogger("info")

var serviceName string

// InitLogger 는 logging 설정으로 전역 로거를 다시 만든다.
// 레벨 값이 비어 있거나 지원하지 않는 경우 info 를 사용한다.
func InitLogger(cfg LoggingConfig) {
	level := strings.ToLower(cfg.Level)
	if level == "" {
		level = "info"
	}
	serviceName = cfg.ServiceName
	Logger = NewLogger(level)
}

// NewLogger 는 주어진 레벨로 gookit/slog 기반 JSON 로거를 생성한다.
func NewLogger(level string) *slog.Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	// 기본 필드는 datetime/level/message 로만 제한하고
	// 나머지 정보는 Fields(top-level 키)로만 출력한다.
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}

// withServiceName 은 service_name 필드를 설정값 또는 SERVICE_NAME 환경변수로 보강한다.
func withServiceName(fields Fields) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields["service_name"]; ok {
		return fields
	}
	sn := serviceName
	if sn == "" {
		sn = os.Getenv("SERVICE_NAME")
	}
	if sn != "" {
		fields["service_name"] = sn
	}
	return fields
}

// InfoWithFields 는 request_id, span_id, service_name 등 구조화 필드를 포함한 로그를 남긴다.
func InfoWithFields(msg string, fields Fields) {
	Logger.WithFields(slog.M(withServiceName(fields))).Info(msg)
}

func DebugWithFields(msg string, fields Fields) {
	Logger.WithFields(slog.M(withServiceName(fields))).Debug(msg)
}

func WarnWithFields(msg string, fields Fields) {
	Logger.WithFields(slog.M(withServiceName(fields))).Warn(msg)
}

func ErrorWithFields(msg string, fields Fields) {
	Logger.WithFields(slog.M(withServiceName(fields))).Error(msg)
}
