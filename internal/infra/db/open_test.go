package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyConnector struct {
	failures int32
	calls    atomic.Int32
}

func (c *flakyConnector) Connect(context.Context) (driver.Conn, error) {
	if c.calls.Add(1) <= c.failures {
		return nil, errors.New("connection refused")
	}
	return nopConn{}, nil
}

func (c *flakyConnector) Driver() driver.Driver { return nil }

type nopConn struct{}

func (nopConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (nopConn) Close() error                        { return nil }
func (nopConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func TestOpen_RetriesUntilReachable(t *testing.T) {
	c := &flakyConnector{failures: 2}

	db, err := Open(context.Background(), c, Pool{MaxOpenConns: 4, MaxIdleConns: 2, ConnectTimeout: 5 * time.Second}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, int32(3), c.calls.Load())
	assert.Equal(t, 4, db.Stats().MaxOpenConnections)
}

func TestOpen_GivesUpAfterTimeout(t *testing.T) {
	c := &flakyConnector{failures: 1 << 30}

	_, err := Open(context.Background(), c, Pool{ConnectTimeout: 200 * time.Millisecond}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}
