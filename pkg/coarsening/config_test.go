package coarsening

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	config := NewConfig()

	require.Equal(t, 0.0, config.UpperBoundPartition())
	require.Equal(t, 10, config.LabelIterations())
	require.Equal(t, OrderingRandom, config.NodeOrdering())
	require.False(t, config.ApplyPartition())
	require.False(t, config.EarlyTermination())
	require.Equal(t, "info", config.LogLevel())
	require.True(t, config.EnableProgress())
}

func TestConfigSet(t *testing.T) {
	config := NewConfig()
	config.Set("coarsening.upper_bound_partition", 12.5)
	config.Set("coarsening.label_iterations", 3)
	config.Set("coarsening.node_ordering", OrderingDegree)

	require.Equal(t, 12.5, config.UpperBoundPartition())
	require.Equal(t, 3, config.LabelIterations())
	require.Equal(t, OrderingDegree, config.NodeOrdering())
}

func TestConfigLoadFromFile(t *testing.T) {
	content := `coarsening:
  upper_bound_partition: 8.0
  label_iterations: 2
  node_ordering: natural
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config := NewConfig()
	require.NoError(t, config.LoadFromFile(path))

	require.Equal(t, 8.0, config.UpperBoundPartition())
	require.Equal(t, 2, config.LabelIterations())
	require.Equal(t, OrderingNatural, config.NodeOrdering())
	require.Equal(t, "debug", config.LogLevel())
}

func TestConfigLoadMissingFile(t *testing.T) {
	config := NewConfig()
	require.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
