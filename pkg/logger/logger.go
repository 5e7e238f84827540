package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер приложения.
// До вызова Init пишет в stderr на уровне info, чтобы пакеты и тесты
// могли логировать без отдельной настройки.
var Log = logrus.New()

// Options - настройки логгера
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json или text
	Output io.Writer
}

// OptionsFromEnv читает LOG_LEVEL и LOG_FORMAT
func OptionsFromEnv() Options {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	return Options{
		Level:  level,
		Format: os.Getenv("LOG_FORMAT"),
		Output: os.Stdout,
	}
}

// Init настраивает глобальный логгер из переменных окружения.
// Вызывается один раз при старте в main.go.
func Init() {
	Configure(OptionsFromEnv())
}

// Configure применяет настройки к глобальному логгеру
func Configure(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для продакшена, "text" - для разработки
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	}
}
