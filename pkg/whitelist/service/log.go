package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

const serviceName = "WhitelistService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the whitelist Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Whitelist wraps the service method with logging
func (ls *logService) Whitelist(
	ctx context.Context,
	req *whitelist.Request,
) (reply *whitelist.Reply, err error) {
	start := time.Now()

	ls.logger.Info("Whitelist started",
		zap.String("service", serviceName),
		zap.String("method", "Whitelist"),
		zap.String("discord_id", req.DiscordID),
		zap.String("username", req.Username),
		zap.String("platform", req.Platform),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Whitelist failed",
				zap.String("service", serviceName),
				zap.String("method", "Whitelist"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Whitelist completed",
				zap.String("service", serviceName),
				zap.String("method", "Whitelist"),
				zap.String("discord_id", req.DiscordID),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Whitelist(ctx, req)
}
