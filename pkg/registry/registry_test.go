package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		next = next.Add(time.Minute)
		return next
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func newTestRegistry(opts ...Option) *Registry {
	base := []Option{
		WithClock(stepClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))),
		WithIDGenerator(seqIDs()),
	}
	return New(append(base, opts...)...)
}

func TestRegistry_AddsRecordAtFront_When_TitleIsValid(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	first, err := reg.Add("Login test", "", "")
	require.NoError(t, err)
	second, err := reg.Add("  Checkout flow  ", "Pay with card", "Receipt shown")
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Stats().Total)
	view := reg.FilteredView(FilterAll)
	require.Len(t, view, 2)
	assert.Equal(t, second.ID, view[0].ID)
	assert.Equal(t, first.ID, view[1].ID)

	assert.Equal(t, "Checkout flow", second.Title)
	assert.Equal(t, "Pay with card", second.Description)
	assert.Equal(t, "Receipt shown", second.ExpectedResult)
	assert.Equal(t, StatusPending, second.Status)
	assert.False(t, second.HasRun())
}

func TestRegistry_AppliesPlaceholders_When_OptionalFieldsBlank(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, err := reg.Add("Login test", "   ", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultDescription, rec.Description)
	assert.Equal(t, DefaultExpectedResult, rec.ExpectedResult)
}

func TestRegistry_KeepsIndentation_When_OptionalFieldsMultiline(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	steps := "  1. Open the app\n     2. Tap login"
	rec, err := reg.Add("Login", steps+"\n\n", "  Dashboard shown ")
	require.NoError(t, err)

	assert.Equal(t, steps, rec.Description)
	assert.Equal(t, "  Dashboard shown", rec.ExpectedResult)
}

func TestRegistry_LeavesStateUnchanged_When_TitleIsBlank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
	}{
		{name: "empty", title: ""},
		{name: "spaces", title: "    "},
		{name: "mixed whitespace", title: " \t\n "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg := newTestRegistry()
			_, err := reg.Add("Existing", "", "")
			require.NoError(t, err)
			before := reg.FilteredView(FilterAll)

			_, err = reg.Add(tc.title, "desc", "expected")

			require.ErrorIs(t, err, ErrEmptyTitle)
			assert.Equal(t, before, reg.FilteredView(FilterAll))
			assert.Equal(t, 1, reg.Stats().Total)
		})
	}
}

func TestRegistry_UpdatesOnlyTarget_When_StatusChanges(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	a, _ := reg.Add("A", "", "")
	b, _ := reg.Add("B", "", "")
	c, _ := reg.Add("C", "", "")

	before := reg.FilteredView(FilterAll)
	reg.UpdateStatus(b.ID, StatusFail)
	after := reg.FilteredView(FilterAll)

	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0], "C must be untouched")
	assert.Equal(t, before[2], after[2], "A must be untouched")
	assert.Equal(t, c.ID, after[0].ID)
	assert.Equal(t, a.ID, after[2].ID)

	got, ok := reg.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, StatusFail, got.Status)
	assert.True(t, got.HasRun())
}

func TestRegistry_RefreshesTimestamp_When_SameStatusSelectedAgain(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, _ := reg.Add("Login test", "", "")

	reg.UpdateStatus(rec.ID, StatusPass)
	first, _ := reg.Get(rec.ID)
	reg.UpdateStatus(rec.ID, StatusPass)
	second, _ := reg.Get(rec.ID)

	assert.Equal(t, StatusPass, second.Status)
	assert.True(t, second.LastRunAt.After(first.LastRunAt))
}

func TestRegistry_IgnoresUnknownID_When_UpdatingOrRemoving(t *testing.T) {
	t.Parallel()

	var events []Event
	reg := newTestRegistry(WithHook(func(ev Event) { events = append(events, ev) }))
	_, _ = reg.Add("Login test", "", "")
	before := reg.FilteredView(FilterAll)

	reg.UpdateStatus("missing", StatusPass)
	reg.Remove("missing")

	assert.Equal(t, before, reg.FilteredView(FilterAll))
	assert.Len(t, events, 1, "no-ops must not emit events")
}

func TestRegistry_IgnoresUpdate_When_StatusOutOfRange(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, err := reg.Add("A", "", "")
	require.NoError(t, err)
	var events []Event
	reg.hooks = append(reg.hooks, func(ev Event) { events = append(events, ev) })

	reg.UpdateStatus(rec.ID, Status(7))
	reg.UpdateStatus(rec.ID, Status(-1))

	got, ok := reg.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, StatusPending, got.Status)
	assert.False(t, got.HasRun())
	assert.Empty(t, events)

	stats := reg.Stats()
	assert.Equal(t, stats.Total, stats.Pending+stats.Pass+stats.Fail)
	assert.Len(t, reg.FilteredView(FilterPending), 1)
}

func TestRegistry_RemovesRecord_When_IDExists(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	a, _ := reg.Add("A", "", "")
	b, _ := reg.Add("B", "", "")

	reg.Remove(a.ID)
	assert.Equal(t, 1, reg.Stats().Total)
	_, ok := reg.Get(a.ID)
	assert.False(t, ok)

	reg.Remove(a.ID)
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, b.ID, reg.FilteredView(FilterAll)[0].ID)
}

func TestRegistry_StatsSumToTotal_When_MixedStatuses(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	statuses := []Status{StatusPass, StatusFail, StatusPending, StatusPass, StatusFail, StatusFail}
	for i, st := range statuses {
		rec, err := reg.Add(fmt.Sprintf("case %d", i), "", "")
		require.NoError(t, err)
		reg.UpdateStatus(rec.ID, st)
	}

	s := reg.Stats()
	assert.Equal(t, Stats{Total: 6, Pending: 1, Pass: 2, Fail: 3}, s)
	assert.Equal(t, s.Total, s.Pending+s.Pass+s.Fail)
}

func TestRegistry_FilteredViewPreservesOrder_When_Filtering(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	ids := make([]string, 0, 4)
	for _, title := range []string{"one", "two", "three", "four"} {
		rec, _ := reg.Add(title, "", "")
		ids = append(ids, rec.ID)
	}
	reg.UpdateStatus(ids[0], StatusPass)
	reg.UpdateStatus(ids[2], StatusPass)
	reg.UpdateStatus(ids[3], StatusFail)

	pass := reg.FilteredView(FilterPass)
	require.Len(t, pass, 2)
	assert.Equal(t, "three", pass[0].Title)
	assert.Equal(t, "one", pass[1].Title)

	for _, f := range Filters {
		for _, rec := range reg.FilteredView(f) {
			assert.True(t, f.Matches(rec.Status))
		}
	}
	assert.Len(t, reg.FilteredView(FilterAll), 4)
}

func TestRegistry_ReturnsCopies_When_CallerMutatesView(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, _ := reg.Add("Login test", "", "")

	view := reg.FilteredView(FilterAll)
	view[0].Status = StatusFail
	view[0].Title = "hacked"

	got, _ := reg.Get(rec.ID)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "Login test", got.Title)
}

func TestRegistry_RetriesID_When_GeneratorCollides(t *testing.T) {
	t.Parallel()

	ids := []string{"dup", "dup", "dup", "fresh"}
	reg := New(WithIDGenerator(func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}))

	first, err := reg.Add("A", "", "")
	require.NoError(t, err)
	second, err := reg.Add("B", "", "")
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestRegistry_ReturnsCollisionError_When_GeneratorIsStuck(t *testing.T) {
	t.Parallel()

	reg := New(WithIDGenerator(func() string { return "same" }))
	_, err := reg.Add("A", "", "")
	require.NoError(t, err)

	_, err = reg.Add("B", "", "")

	require.ErrorIs(t, err, ErrIDCollision)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_UsesUUIDs_When_NoGeneratorConfigured(t *testing.T) {
	t.Parallel()

	reg := New()
	a, _ := reg.Add("A", "", "")
	b, _ := reg.Add("B", "", "")

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegistry_EmitsEvents_When_Mutating(t *testing.T) {
	t.Parallel()

	var events []Event
	reg := newTestRegistry(WithHook(func(ev Event) { events = append(events, ev) }))
	rec, _ := reg.Add("Login test", "", "")
	reg.UpdateStatus(rec.ID, StatusFail)
	reg.Remove(rec.ID)

	require.Len(t, events, 3)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, EventStatusChanged, events[1].Kind)
	assert.Equal(t, StatusPending, events[1].Previous)
	assert.Equal(t, StatusFail, events[1].Record.Status)
	assert.Equal(t, EventRemoved, events[2].Kind)
	assert.Equal(t, rec.ID, events[2].Record.ID)
}

func TestScenario_AddLoginTest_When_RegistryEmpty(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, err := reg.Add("Login test", "", "")
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 1, Pending: 1}, reg.Stats())
	pending := reg.FilteredView(FilterPending)
	require.Len(t, pending, 1)
	assert.Equal(t, rec, pending[0])
}

func TestScenario_MarkPass_When_OnePendingRecord(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	rec, _ := reg.Add("Login test", "", "")

	reg.UpdateStatus(rec.ID, StatusPass)

	assert.Equal(t, Stats{Total: 1, Pass: 1}, reg.Stats())
	got, _ := reg.Get(rec.ID)
	assert.True(t, got.HasRun())
}

func TestScenario_FilterFail_When_OnePassOneFail(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	passing, _ := reg.Add("passing", "", "")
	failing, _ := reg.Add("failing", "", "")
	reg.UpdateStatus(passing.ID, StatusPass)
	reg.UpdateStatus(failing.ID, StatusFail)

	view := reg.FilteredView(FilterFail)

	require.Len(t, view, 1)
	assert.Equal(t, failing.ID, view[0].ID)
}
