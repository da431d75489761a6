package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/venture-studio/internal/infra/db"
)

func TestConnect_RejectsBadDSN(t *testing.T) {
	_, err := Connect(context.Background(), "venture:secret@tcp(localhost:3306)", db.Pool{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse mysql dsn")
}

func TestConnect_RequiresParseTime(t *testing.T) {
	_, err := Connect(context.Background(), "venture:secret@tcp(localhost:3306)/venture_studio", db.Pool{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parseTime=true")
}
