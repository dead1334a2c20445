package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config задаёт кодировку и уровень логов.
type Config struct {
	Development bool
	Level       string
}

type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	sugar  *zap.SugaredLogger
}

// NewZap собирает zap-логгер, пишущий в writer (stderr, если writer == nil).
// В режиме разработки — консольный вывод, иначе json.
func NewZap(writer io.Writer, cfg Config) *zap.Logger {
	if writer == nil {
		writer = os.Stderr
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	var encoder zapcore.Encoder
	if cfg.Development {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return FromZap(NewZap(writer, Config{Development: true, Level: "debug"}), prefix)
}

func FromZap(z *zap.Logger, prefix string) *BaseLogger {
	return &BaseLogger{
		sugar:  z.Sugar(),
		prefix: prefix,
	}
}

// NewNop — логгер, который ничего не пишет. Для тестов.
func NewNop() *BaseLogger {
	return FromZap(zap.NewNop(), "")
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.sugar.Infof(l.format(format), v...)
}

func (l *BaseLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(l.format(format), v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(l.format(format), v...)
}

func (l *BaseLogger) WithPrefix(extraPrefix string) *BaseLogger {
	return &BaseLogger{
		sugar:  l.sugar,
		prefix: strings.TrimSpace(l.currentPrefix() + " " + extraPrefix),
	}
}

// With добавляет структурированные поля ко всем последующим записям.
func (l *BaseLogger) With(args ...interface{}) *BaseLogger {
	return &BaseLogger{
		sugar:  l.sugar.With(args...),
		prefix: l.currentPrefix(),
	}
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

func (l *BaseLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *BaseLogger) currentPrefix() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.prefix
}

func (l *BaseLogger) format(format string) string {
	if p := l.currentPrefix(); p != "" {
		return p + " " + format
	}
	return format
}
