package dashboard

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/regdash/pkg/registry"
)

func runConsole(t *testing.T, reg *registry.Registry, script string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := RunNonTTY(ctx, reg, strings.NewReader(script), &out, Options{})
	require.NoError(t, err)
	return out.String()
}

func TestRunNonTTY_ExecutesScript_When_CommandsValid(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	out := runConsole(t, reg, strings.Join([]string{
		"add Login | Enter credentials | Dashboard shown",
		"add Checkout",
		"pass 1",
		"fail 2",
		"stats",
		"quit",
		"add After quit",
	}, "\n"))

	require.Equal(t, 2, reg.Len())
	view := reg.FilteredView(registry.FilterAll)
	assert.Equal(t, "Checkout", view[0].Title)
	assert.Equal(t, registry.StatusPass, view[0].Status)
	assert.Equal(t, "Login", view[1].Title)
	assert.Equal(t, "Enter credentials", view[1].Description)
	assert.Equal(t, "Dashboard shown", view[1].ExpectedResult)
	assert.Equal(t, registry.StatusFail, view[1].Status)

	assert.Contains(t, out, "added Login")
	assert.Contains(t, out, "pass: Checkout")
	assert.Contains(t, out, "fail: Login")
	assert.Contains(t, out, "total 2 · pending 0 · pass 1 · fail 1")
	assert.NotContains(t, out, "After quit")
}

func TestRunNonTTY_IgnoresAdd_When_TitleBlank(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	out := runConsole(t, reg, "add   \nadd | only a description\n")

	assert.Equal(t, 0, reg.Len())
	assert.NotContains(t, out, "added")
	assert.NotContains(t, out, "error")
}

func TestRunNonTTY_KeepsLiteralPipe_When_Escaped(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	out := runConsole(t, reg, `add Login \| SSO | Use the corporate IdP | Lands on a|b page`+"\n")

	require.Equal(t, 1, reg.Len())
	rec := reg.FilteredView(registry.FilterAll)[0]
	assert.Equal(t, "Login | SSO", rec.Title)
	assert.Equal(t, "Use the corporate IdP", rec.Description)
	assert.Equal(t, "Lands on a|b page", rec.ExpectedResult)
	assert.Contains(t, out, "added Login | SSO")
}

func TestSplitFields_SplitsOnUnescapedPipes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "Login", want: []string{"Login", "", ""}},
		{in: " Login | steps ", want: []string{"Login", "steps", ""}},
		{in: `a\|b|c|d|e`, want: []string{"a|b", "c", "d|e"}},
		{in: `trailing \`, want: []string{`trailing \`, "", ""}},
		{in: "", want: []string{"", "", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, splitFields(tc.in, 3))
		})
	}
}

func TestRunNonTTY_ResolvesRefs_When_FilterActive(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "A", "B", "C")
	// View order is C, B, A. Mark C pass, then filter to pending (B, A).
	runConsole(t, reg, "pass 1\nfilter pending\nfail 2\nrm id-2\n")

	a, ok := reg.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, registry.StatusFail, a.Status)

	_, ok = reg.Get("id-2")
	assert.False(t, ok, "B removed by id")

	c, ok := reg.Get("id-3")
	require.True(t, ok)
	assert.Equal(t, registry.StatusPass, c.Status)
}

func TestRunNonTTY_IgnoresCommand_When_RefUnknown(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "A")
	out := runConsole(t, reg, "pass 5\nfail 0\nreset missing-id\nrm\npass\n")

	rec, ok := reg.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, registry.StatusPending, rec.Status)
	assert.False(t, rec.HasRun())
	assert.Equal(t, 1, reg.Len())
	assert.NotContains(t, out, "error")
}

func TestRunNonTTY_PrintsHint_When_CommandUnknown(t *testing.T) {
	t.Parallel()

	out := runConsole(t, testRegistry(t), "frobnicate now\n")
	assert.Contains(t, out, `unknown command "frobnicate" (try help)`)
}

func TestRunNonTTY_ReportsError_When_ArgumentInvalid(t *testing.T) {
	t.Parallel()

	out := runConsole(t, testRegistry(t), "filter broken\nexport pdf\n")
	assert.Contains(t, out, `error: unknown filter "broken"`)
	assert.Contains(t, out, `error: unknown report format "pdf"`)
}

func TestRunNonTTY_ExportsReports_When_Requested(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "Login", "Checkout")
	out := runConsole(t, reg, "fail 1\nlist\nexport markdown\nexport json\nhelp\n")

	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "| Status | Last run | Title | Expected result |")
	assert.Contains(t, out, `"title": "Checkout"`)
	assert.Contains(t, out, `"status": "fail"`)
	assert.Contains(t, out, "<ref> is a 1-based position")
}

func TestRunNonTTY_Returns_When_ContextCancelled(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	reg := testRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunNonTTY(ctx, reg, pr, io.Discard, Options{})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop after cancel")
	}
}
