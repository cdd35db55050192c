// Package console owns the persistent RCON connection to the game server.
//
// The underlying protocol is strict request/response with no multiplexing:
// a command written while a previous reply is still in flight corrupts the
// correlation between commands and replies. All dispatches therefore pass
// through a single Client that serializes exchanges behind a mutex.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorcon/rcon"
	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/internal/metrics"
	"github.com/angelsmp/discord-whitelist/pkg/config"
)

// Console dispatches a single administrative command and returns the raw
// reply text from the game server.
type Console interface {
	Send(ctx context.Context, command string) (string, error)
}

// ErrDisabled is returned when no console credential is configured
var ErrDisabled = errors.New("remote console is not configured")

// executor is the narrow surface of *rcon.Conn the client needs,
// extracted so tests can substitute the connection.
type executor interface {
	Execute(command string) (string, error)
	Close() error
}

// Client is the single shared console handle. It is safe for concurrent
// use; callers queue on the internal mutex and at most one
// command/response exchange is outstanding at any time.
type Client struct {
	mu     sync.Mutex
	conn   executor
	logger *zap.Logger
}

// Dial connects to the game server console. The configured timeout bounds
// both the dial and every subsequent command exchange, so a stuck command
// cannot block queued callers indefinitely.
func Dial(cfg *config.ConsoleConfig, logger *zap.Logger) (*Client, error) {
	conn, err := rcon.Dial(cfg.Address, cfg.Password,
		rcon.SetDialTimeout(cfg.Timeout),
		rcon.SetDeadline(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("console dial %s: %w", cfg.Address, err)
	}

	logger.Info("Connected to game server console", zap.String("address", cfg.Address))
	return &Client{conn: conn, logger: logger}, nil
}

// Send dispatches one command and waits for its reply. Exchanges are
// serialized; the connection deadline bounds how long the exchange may
// hold the queue.
func (c *Client) Send(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The caller may have given up while queued behind a slow command.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	response, err := c.conn.Execute(command)
	metrics.ConsoleCommandDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ConsoleFailures.Inc()
		c.logger.Error("Console command failed",
			zap.String("command", command),
			zap.Error(err),
		)
		return "", fmt.Errorf("console execute: %w", err)
	}

	c.logger.Debug("Console command executed",
		zap.String("command", command),
		zap.Duration("duration", time.Since(start)),
	)
	return response, nil
}

// Close closes the console connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// Disabled returns a Console whose dispatches always fail with ErrDisabled.
// Used when no console password is configured so the rest of the pipeline
// can treat the feature as an unavailable dependency rather than a nil handle.
func Disabled() Console {
	return disabledConsole{}
}

type disabledConsole struct{}

func (disabledConsole) Send(context.Context, string) (string, error) {
	return "", ErrDisabled
}
