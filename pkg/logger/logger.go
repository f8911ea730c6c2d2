package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Development gets a readable console
// encoder, everything else the JSON production config. When file is set
// output goes there instead of stderr.
func New(environment, file string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
