package logging

import "go.uber.org/zap"

// GetSugaredLogger returns the process-wide sugared zap logger.
func GetSugaredLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("cannot initialize zap logger")
	}

	return logger.Sugar()
}
