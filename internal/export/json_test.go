package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotJSONShape(t *testing.T) {
	data, err := SnapshotJSON(diagramSnapshot())
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "nodes")
	require.Contains(t, decoded, "edges")
	require.Contains(t, decoded, "edge_types")
	require.Contains(t, decoded, "stats")

	stats := decoded["stats"].(map[string]any)
	assert.Equal(t, float64(4), stats["node_count"])
	assert.Equal(t, float64(4), stats["edge_count"])
	assert.Equal(t, float64(3), stats["file_count"])
	assert.Equal(t, float64(1), stats["avg_connections"])

	edgeTypes := decoded["edge_types"].(map[string]any)
	assert.Equal(t, "calls", edgeTypes["app.py::run_server->app.py::Server"])

	node := decoded["nodes"].(map[string]any)["app.py::run_server"].(map[string]any)
	assert.Equal(t, "run_server", node["name"])
	assert.Equal(t, "function", node["kind"])
	assert.Equal(t, "python", node["language"])
	assert.Equal(t, "app.py", node["file_path"])
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "snapshot.json")
	require.NoError(t, WriteSnapshot(path, diagramSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "nodes")
}
