package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger for the given service. Production config in every
// environment except local, where the development console encoder is friendlier.
func New(serviceName, env string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if env == "local" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("service", serviceName)), nil
}
