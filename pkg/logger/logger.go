package logger

import (
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.Nop()
)

// Init настраивает глобальный JSON логгер сервиса с выводом в stdout
func Init(serviceName string, level string) {
	InitWithWriter(serviceName, level, os.Stdout)
}

// InitWithWriter настраивает логгер с произвольным writer (используется в тестах)
func InitWithWriter(serviceName string, level string, w io.Writer) {
	l := build(serviceName, level, w)

	mu.Lock()
	log = l
	mu.Unlock()
}

// InitLogstash дублирует логи в Logstash по TCP помимо stdout
func InitLogstash(addr string, serviceName string, level string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return err
	}

	InitWithWriter(serviceName, level, zerolog.MultiLevelWriter(os.Stdout, conn))
	return nil
}

func build(serviceName, level string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Info() *zerolog.Event {
	return current().Info()
}

func Error() *zerolog.Event {
	return current().Error()
}

func Debug() *zerolog.Event {
	return current().Debug()
}

func Warn() *zerolog.Event {
	return current().Warn()
}

func Fatal() *zerolog.Event {
	return current().Fatal()
}

func With() zerolog.Context {
	return current().With()
}

// Printf адаптер для библиотек, ожидающих printf-логгер (cron, kafka-go)
func Printf(format string, v ...interface{}) {
	current().Info().Msgf(format, v...)
}

// Errorf адаптер для error-логгера kafka-go
func Errorf(format string, v ...interface{}) {
	current().Error().Msgf(format, v...)
}
