package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

func tempSqliteRepo(t *testing.T) *SqlRepo {
	db, err := NewDatabase(config.DatabaseConfig{Type: config.DatabaseSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	repo, err := NewSqlRepository(db)
	require.NoError(t, err)

	return repo
}

func TestNewDatabase_Unsupported(t *testing.T) {
	_, err := NewDatabase(config.DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)
}

func TestSqlRepo_Migrate_Idempotent(t *testing.T) {
	repo := tempSqliteRepo(t)

	require.NoError(t, repo.migrate())

	var count int64
	repo.db.Model(&SysStat{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSqlRepo_AuditEntries(t *testing.T) {
	repo := tempSqliteRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveAuditEntry(ctx, &domain.AuditEntry{
		CreatedAt: now.Add(-time.Minute), Severity: domain.AuditSeverityLevelLow, Origin: "gate:login",
		SessionId: "s1", ControllerId: "abhi", Message: "first",
	}))
	require.NoError(t, repo.SaveAuditEntry(ctx, &domain.AuditEntry{
		CreatedAt: now, Severity: domain.AuditSeverityLevelHigh, Origin: "train:action",
		SessionId: "s2", ControllerId: "ravi", Message: "second",
	}))

	entries, err := repo.GetAllAuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "first", entries[1].Message)
	assert.NotZero(t, entries[0].UniqueId)

	entries, err = repo.GetSessionAuditEntries(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abhi", entries[0].ControllerId)
}

func TestGormLogger_LogMode(t *testing.T) {
	l := NewLogger(time.Second, false)
	assert.False(t, l.Silent)

	l.LogMode(logger.Silent)
	assert.True(t, l.Silent)
}
