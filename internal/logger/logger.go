package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Production config by default,
// human-readable development config when APP_ENV=development.
func New() *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	if os.Getenv("APP_ENV") == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	return l
}
