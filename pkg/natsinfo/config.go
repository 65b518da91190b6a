package natsinfo

import (
	"context"
	"fmt"
	"time"

	nats "github.com/nats-io/nats.go"
	"github.com/romashorodok/content-site/pkg/envutils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type NatsConfig struct {
	Enabled        bool
	Port           string
	Host           string
	ConnectTimeout time.Duration
}

func (c *NatsConfig) GetURL() string {
	if c.Host == "" || c.Port == "" {
		return nats.DefaultURL
	}
	return fmt.Sprintf("nats://%s:%s", c.Host, c.Port)
}

func NewNatsConfig() *NatsConfig {
	return &NatsConfig{
		Enabled:        envutils.EnvBool("NATS_ENABLED", true),
		Host:           envutils.Env("NATS_HOST", "nats"),
		Port:           envutils.Env("NATS_PORT", "4222"),
		ConnectTimeout: envutils.EnvDuration("NATS_CONNECT_TIMEOUT", 30*time.Second),
	}
}

type NewNatsConnectionParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config *NatsConfig
	Logger *zap.Logger
}

// Conn and JS are nil when NATS is disabled, consumers fall back to in-process behaviour.
type NewNatsConnectionResult struct {
	fx.Out

	Conn *nats.Conn
	JS   nats.JetStreamContext
}

func NewNatsConnection(params NewNatsConnectionParams) (NewNatsConnectionResult, error) {
	logger := params.Logger.Named("nats")
	if !params.Config.Enabled {
		logger.Info("NATS disabled, using in-process cache and events")
		return NewNatsConnectionResult{}, nil
	}

	conn, err := nats.Connect(params.Config.GetURL(),
		nats.Timeout(params.Config.ConnectTimeout),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return NewNatsConnectionResult{}, err
	}

	js, err := conn.JetStream()
	if err != nil {
		return NewNatsConnectionResult{}, err
	}

	if err := waitConnected(conn, params.Config, logger); err != nil {
		conn.Close()
		return NewNatsConnectionResult{}, err
	}

	params.Lifecycle.Append(fx.StopHook(func(ctx context.Context) error {
		return conn.Drain()
	}))

	return NewNatsConnectionResult{
		Conn: conn,
		JS:   js,
	}, nil
}

func waitConnected(conn *nats.Conn, config *NatsConfig, logger *zap.Logger) error {
	timeout := config.ConnectTimeout
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	done := time.NewTimer(timeout)
	defer done.Stop()

	for {
		select {
		case <-done.C:
			return fmt.Errorf("unable establish nats connection to %s in %s", config.GetURL(), timeout)
		case <-ticker.C:
			status := conn.Status()
			if status == nats.CONNECTED {
				logger.Info("NATS connected", zap.String("url", conn.ConnectedUrl()))
				return nil
			}
			logger.Debug("NATS connection state", zap.Stringer("status", status))
		}
	}
}
