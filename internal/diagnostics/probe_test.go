package diagnostics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
)

type nopPinger struct{}

func (nopPinger) Ping(ctx context.Context) error { return nil }

func setupProbeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS contact_messages (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  subject TEXT NOT NULL,
  message TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestProbeInsertAndDeleteRoundTrip(t *testing.T) {
	db := setupProbeTestDB(t)
	prober := NewProber(db, nopPinger{})
	ctx := context.Background()

	id, err := prober.InsertProbe(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Where("id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, prober.DeleteProbe(ctx, id))
	require.NoError(t, db.Model(&models.ContactMessage{}).Where("id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestProbeTableExists(t *testing.T) {
	db := setupProbeTestDB(t)
	prober := NewProber(db, nopPinger{})
	ctx := context.Background()

	exists, err := prober.TableExists(ctx, "contact_messages")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = prober.TableExists(ctx, "books")
	require.NoError(t, err)
	assert.False(t, exists)
}
