package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

type ClickHouseClient struct {
	Conn   clickhouse.Conn
	logger *zap.Logger
}

type ClickHouseOptions struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

func NewClickHouseDB(ctx context.Context, opts ClickHouseOptions, logger *zap.Logger) (*ClickHouseClient, error) {
	if opts.Host == "" || opts.Port == 0 || opts.Database == "" {
		return nil, fmt.Errorf("CLICKHOUSE_HOST, CLICKHOUSE_NATIVE_PORT, or CLICKHOUSE_DB_NAME environment variables are not set")
	}

	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", opts.Host, opts.Port)},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "recruitfunnel-site", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: time.Second * 5,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse via Native TCP: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	logger.Info("connected to ClickHouse", zap.String("addr", options.Addr[0]), zap.String("database", opts.Database))
	return &ClickHouseClient{Conn: conn, logger: logger}, nil
}

func (c *ClickHouseClient) Close() {
	if c.Conn != nil {
		if err := c.Conn.Close(); err != nil {
			c.logger.Warn("error closing ClickHouse connection", zap.Error(err))
			return
		}
		c.logger.Info("ClickHouse connection closed")
	}
}
