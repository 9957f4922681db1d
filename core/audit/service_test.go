package audit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-dashboard/core/audit"
	inmemdb "github.com/trezcool/masomo-dashboard/storage/database/inmem"
)

func TestRecorder(t *testing.T) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	rec := audit.NewRecorder(inmemdb.NewAuditRepository(db))

	for i := 1; i <= 12; i++ {
		require.NoError(t, rec.Record(audit.ActionCreate, "event", fmt.Sprintf("evt-%d", i), "admin"))
	}

	logs, err := rec.Recent(0)
	require.NoError(t, err)
	require.Len(t, logs, audit.DefaultLimit)
	assert.Equal(t, "evt-12", logs[0].EntityID, "newest first")
	assert.Equal(t, "evt-3", logs[len(logs)-1].EntityID)
	assert.False(t, logs[0].CreatedAt.IsZero())

	logs, err = rec.Recent(50)
	require.NoError(t, err)
	assert.Len(t, logs, 12)

	var nilRec *audit.Recorder
	assert.NoError(t, nilRec.Record(audit.ActionDelete, "event", "evt-1", "admin"))
}
