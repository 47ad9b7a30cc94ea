package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/regdash/pkg/registry"
)

func TestCollector_TracksGauges_When_RegistryMutates(t *testing.T) {
	t.Parallel()

	c := New()
	reg := registry.New(registry.WithHook(c.Hook()))

	a, err := reg.Add("A", "", "")
	require.NoError(t, err)
	b, err := reg.Add("B", "", "")
	require.NoError(t, err)
	reg.UpdateStatus(a.ID, registry.StatusPass)
	reg.UpdateStatus(a.ID, registry.StatusPass)
	reg.UpdateStatus(b.ID, registry.StatusFail)
	reg.Remove(b.ID)
	reg.Remove("missing")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.added))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.removed))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.statusUpdates.WithLabelValues("pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusUpdates.WithLabelValues("fail")))

	stats := reg.Stats()
	assert.Equal(t, float64(stats.Pending), testutil.ToFloat64(c.records.WithLabelValues("pending")))
	assert.Equal(t, float64(stats.Pass), testutil.ToFloat64(c.records.WithLabelValues("pass")))
	assert.Equal(t, float64(stats.Fail), testutil.ToFloat64(c.records.WithLabelValues("fail")))
}

func TestCollector_WritesTextfile_When_PathGiven(t *testing.T) {
	t.Parallel()

	c := New()
	reg := registry.New(registry.WithHook(c.Hook()))
	_, err := reg.Add("Login test", "", "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "regdash.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "regdash_records_added_total 1")
	assert.Contains(t, string(data), `regdash_records{status="pending"} 1`)
}

func TestCollector_ExposesEveryStatus_When_Fresh(t *testing.T) {
	t.Parallel()

	count, err := testutil.GatherAndCount(New().Gatherer(), "regdash_records")
	require.NoError(t, err)
	assert.Equal(t, len(registry.Statuses), count)
}
