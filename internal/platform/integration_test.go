package platform_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle runs the reference scenario against the real filesystem
// adapter, reopening the store between steps as separate CLI runs would.
func TestLifecycle(t *testing.T) {
	for _, name := range []string{"notes.json", "notes.yaml", "notes.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			ctx := context.Background()

			open := func() *core.Service {
				svc, err := platform.New(path)
				require.NoError(t, err)
				return svc
			}

			milk, err := open().Create(ctx, "Buy milk", []string{"errand"})
			require.NoError(t, err)
			assert.Equal(t, 0, milk.ID)

			report, err := open().Create(ctx, "Write report", nil)
			require.NoError(t, err)
			assert.Equal(t, 1, report.ID)

			found, err := open().Find(ctx, "report")
			require.NoError(t, err)
			assert.Equal(t, []core.Note{{ID: 1, Content: "Write report", Tags: []string{}}}, found)

			id, err := open().Remove(ctx, 0)
			require.NoError(t, err)
			assert.Equal(t, 0, id)

			_, err = open().Remove(ctx, 0)
			assert.ErrorIs(t, err, core.ErrNotFound)

			all, err := open().ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []core.Note{{ID: 1, Content: "Write report", Tags: []string{}}}, all)

			require.NoError(t, open().RemoveAll(ctx))
			require.NoError(t, open().RemoveAll(ctx))

			all, err = open().ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			again, err := open().Create(ctx, "fresh start", nil)
			require.NoError(t, err)
			assert.Equal(t, 0, again.ID, "numbering restarts after clean")
		})
	}
}
