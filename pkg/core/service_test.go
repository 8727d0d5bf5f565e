package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/notes/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test the fallback.
type MockRepository struct {
	notes    []core.Note
	replaces int
	loadErr  error
	saveErr  error
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func (m *MockRepository) Load(ctx context.Context) ([]core.Note, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]core.Note(nil), m.notes...), nil
}

func (m *MockRepository) Replace(ctx context.Context, notes []core.Note) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.replaces++
	m.notes = append([]core.Note(nil), notes...)
	return nil
}

func newService(t *testing.T) (*core.Service, *MockRepository) {
	t.Helper()
	repo := &MockRepository{}
	return core.NewService(repo, nil), repo
}

func TestService_Scenario(t *testing.T) {
	service, _ := newService(t)
	ctx := context.TODO()

	milk, err := service.Create(ctx, "Buy milk", []string{"errand"})
	require.NoError(t, err)
	assert.Equal(t, 0, milk.ID)

	report, err := service.Create(ctx, "Write report", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ID)

	found, err := service.Find(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, []core.Note{{ID: 1, Content: "Write report", Tags: []string{}}}, found)

	id, err := service.Remove(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)

	require.NoError(t, service.RemoveAll(ctx))
	all, err = service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_CreateAssignsSequentialIDs(t *testing.T) {
	service, _ := newService(t)
	ctx := context.TODO()

	contents := []string{"one", "two", "three", "four"}
	for _, c := range contents {
		_, err := service.Create(ctx, c, []string{c, c})
		require.NoError(t, err)
	}

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(contents))
	for i, n := range all {
		assert.Equal(t, i, n.ID)
		assert.Equal(t, contents[i], n.Content)
		assert.Equal(t, []string{contents[i], contents[i]}, n.Tags, "duplicate tags are kept")
	}
}

func TestService_IDAfterRemoval(t *testing.T) {
	tests := []struct {
		name   string
		remove []int
		want   int
	}{
		{"remove middle", []int{1}, 3},
		{"remove max", []int{2}, 2},
		{"remove all but first", []int{1, 2}, 1},
		{"remove everything", []int{0, 1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService(t)
			ctx := context.TODO()
			for _, c := range []string{"a", "b", "c"} {
				_, err := service.Create(ctx, c, nil)
				require.NoError(t, err)
			}
			for _, id := range tt.remove {
				_, err := service.Remove(ctx, id)
				require.NoError(t, err)
			}

			n, err := service.Create(ctx, "next", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.ID)
		})
	}
}

func TestService_RemoveMissing(t *testing.T) {
	service, repo := newService(t)
	ctx := context.TODO()

	_, err := service.Create(ctx, "keep me", nil)
	require.NoError(t, err)
	writes := repo.replaces

	_, err = service.Remove(ctx, 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, writes, repo.replaces, "a missing id must not rewrite the store")

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_RemoveDoesNotRenumber(t *testing.T) {
	service, _ := newService(t)
	ctx := context.TODO()
	for _, c := range []string{"a", "b", "c"} {
		_, err := service.Create(ctx, c, nil)
		require.NoError(t, err)
	}

	_, err := service.Remove(ctx, 1)
	require.NoError(t, err)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0, all[0].ID)
	assert.Equal(t, 2, all[1].ID)
}

func TestService_RemoveAllIdempotent(t *testing.T) {
	service, _ := newService(t)
	ctx := context.TODO()

	require.NoError(t, service.RemoveAll(ctx))
	require.NoError(t, service.RemoveAll(ctx))

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestService_Find(t *testing.T) {
	service, _ := newService(t)
	ctx := context.TODO()
	for _, c := range []string{"Buy milk", "buy bread", "Write report"} {
		_, err := service.Create(ctx, c, nil)
		require.NoError(t, err)
	}

	tests := []struct {
		filter string
		want   []int
	}{
		{"", []int{0, 1, 2}},
		{"Buy", []int{0}},
		{"uy", []int{0, 1}},
		{"r", []int{1, 2}},
		{"nothing", []int{}},
		{"b.*", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := service.Find(ctx, tt.filter)
			require.NoError(t, err)
			ids := []int{}
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		tags    []string
	}{
		{"empty content", "", nil},
		{"blank content", "  \t\n", nil},
		{"empty tag", "ok", []string{"a", ""}},
		{"blank tag", "ok", []string{" "}},
		{"latin-1 content", "caf\xe9 latin1", nil},
		{"latin-1 tag", "ok", []string{"caf\xe9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService(t)
			_, err := service.Create(context.TODO(), tt.content, tt.tags)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrValidation), "expected ErrValidation, got %v", err)

			var verrs core.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.NotEmpty(t, verrs)
			assert.Zero(t, repo.replaces)
		})
	}
}

func TestService_PropagatesStorageErrors(t *testing.T) {
	ctx := context.TODO()
	boom := errors.New("disk full")

	repo := &MockRepository{saveErr: boom}
	service := core.NewService(repo, nil)
	_, err := service.Create(ctx, "x", nil)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, service.RemoveAll(ctx), boom)

	repo = &MockRepository{loadErr: boom}
	service = core.NewService(repo, nil)
	_, err = service.ListAll(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = service.Find(ctx, "")
	assert.ErrorIs(t, err, boom)
	_, err = service.Remove(ctx, 0)
	assert.ErrorIs(t, err, boom)
}

func TestService_Watch_Unsupported(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Watch(context.TODO())
	if err == nil {
		t.Fatal("expected error for non-watchable repo")
	}
	if err.Error() != "repository does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

func TestService_State(t *testing.T) {
	service, _ := newService(t)

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "service", service.ComponentType())
}
