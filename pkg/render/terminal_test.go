package render_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	tests := []struct {
		name  string
		notes []core.Note
		want  string
	}{
		{
			name:  "empty",
			notes: nil,
			want:  "No notes to show.\n",
		},
		{
			name: "several",
			notes: []core.Note{
				{ID: 0, Content: "Buy milk", Tags: []string{"errand", "home"}},
				{ID: 3, Content: "Write report", Tags: []string{}},
			},
			want: "id: 0\ntags: errand, home\nnote: Buy milk\n\n" +
				"id: 3\ntags: \nnote: Write report\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, render.Notes(&buf, tt.notes))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCreated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Created(&buf, core.Note{ID: 2, Content: "hi"}))
	assert.Equal(t, "New note added: {\"id\":2,\"content\":\"hi\",\"tags\":[]}\n", buf.String())
}

func TestRemoved(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Removed(&buf, 0, true))
	require.NoError(t, render.Removed(&buf, 0, false))
	assert.Equal(t, "0 removed.\nNo note removed.\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.JSON(&buf, []core.Note{}))
	assert.Equal(t, "[]\n", buf.String())
}
