package tests

import (
	"context"
	"testing"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TreeLoaderContractTest verifies that a loader returns exactly the expected nodes.
func TreeLoaderContractTest(t *testing.T, loader ports.TreeLoader, want []domain.Node) {
	t.Helper()

	tree, err := loader.LoadTree(context.Background())
	require.NoError(t, err, "LoadTree should succeed")
	require.NotNil(t, tree)

	t.Run("Nodes", func(t *testing.T) {
		assert.Equal(t, len(want), tree.Len())
		for _, w := range want {
			got, ok := tree.Get(w.ID)
			if !assert.True(t, ok, "node %s missing", w.ID) {
				continue
			}
			assert.Equal(t, w.Kind, got.Kind, "kind of %s", w.ID)
			assert.Equal(t, w.Content, got.Content, "content of %s", w.ID)
			assert.Equal(t, w.Options, got.Options, "options of %s", w.ID)
			if idx, ok := w.VideoRef(); ok {
				gotIdx, gotOK := got.VideoRef()
				assert.True(t, gotOK)
				assert.Equal(t, idx, gotIdx)
			}
		}
	})

	t.Run("Absent", func(t *testing.T) {
		_, ok := tree.Get("non-existent-node")
		assert.False(t, ok)
	})
}
