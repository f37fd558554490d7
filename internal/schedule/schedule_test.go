package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand returns queued values in order and records every bound it was asked for.
type seqRand struct {
	vals   []int
	bounds []int
}

func (r *seqRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestReconcileCreatesJitteredEntries(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	cat := Catalog{TotalAccounts: 2, Intervals: map[string]int{"water": 3}}
	st := NewStore()
	rng := &seqRand{vals: []int{2, 0}}

	rep := Reconcile(cat, st, today, rng)

	assert.Equal(t, 2, rep.Added)
	assert.Equal(t, []int{3, 3}, rng.bounds)
	d1, ok := st.Get("001", "water")
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", d1.String())
	d2, ok := st.Get("002", "water")
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", d2.String())
}

func TestReconcileJitterBounds(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-03-10")
	cat := Catalog{TotalAccounts: 50, Intervals: map[string]int{"water": 3, "feed": 7, "walk": 1}}
	st := NewStore()

	Reconcile(cat, st, today, NewRand())

	for _, account := range cat.AccountIDs() {
		for task, interval := range cat.Intervals {
			due, ok := st.Get(account, task)
			require.True(t, ok, "missing %s/%s", account, task)
			off := today.DaysUntil(due)
			assert.GreaterOrEqual(t, off, 0)
			assert.Less(t, off, interval)
		}
	}
}

func TestReconcileDailyNeverJitters(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	cat := Catalog{TotalAccounts: 3, Intervals: map[string]int{"login": 1}}
	st := NewStore()
	rng := &seqRand{vals: []int{5, 5, 5}}

	Reconcile(cat, st, today, rng)

	assert.Empty(t, rng.bounds)
	for _, a := range cat.AccountIDs() {
		due, ok := st.Get(a, "login")
		require.True(t, ok)
		assert.Equal(t, today, due)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	cat := Catalog{TotalAccounts: 4, Intervals: map[string]int{"water": 3, "feed": 5}}
	st := NewStore()

	Reconcile(cat, st, today, NewRand())
	first := st.Snapshot()
	rep := Reconcile(cat, st, today, NewRand())

	assert.False(t, rep.Changed())
	assert.Equal(t, first, st.Snapshot())
}

func TestReconcileKeepsExistingEntries(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-05")
	cat := Catalog{TotalAccounts: 1, Intervals: map[string]int{"water": 3}}
	st := NewStore()
	old := mustDate(t, "2023-12-01")
	st.Set("001", "water", old)

	rep := Reconcile(cat, st, today, &seqRand{vals: []int{1}})

	assert.Equal(t, 0, rep.Added)
	due, _ := st.Get("001", "water")
	assert.Equal(t, old, due)
}

func TestReconcilePrunesRemovedTasks(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	st := NewStore()
	st.Set("001", "water", today)
	st.Set("001", "feed", today)
	st.Set("002", "water", today)
	// account above the configured range is still pruned of unknown tasks
	st.Set("009", "water", today)
	cat := Catalog{TotalAccounts: 2, Intervals: map[string]int{"feed": 2}}

	rep := Reconcile(cat, st, today, &seqRand{})

	assert.Equal(t, 3, rep.Pruned)
	for _, a := range st.Accounts() {
		_, ok := st.Get(a, "water")
		assert.False(t, ok, "water still scheduled for %s", a)
	}
	_, ok := st.Get("002", "feed")
	assert.True(t, ok)
}

func TestReconcileZeroIntervalRemovesEntries(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	st := NewStore()
	feedDue := mustDate(t, "2024-01-02")
	st.Set("001", "water", today)
	st.Set("002", "water", today)
	st.Set("001", "feed", feedDue)
	cat := Catalog{TotalAccounts: 2, Intervals: map[string]int{"water": 0, "feed": 2}}

	rep := Reconcile(cat, st, today, &seqRand{})

	assert.Equal(t, 2, rep.Retired)
	_, ok := st.Get("001", "water")
	assert.False(t, ok)
	_, ok = st.Get("002", "water")
	assert.False(t, ok)
	due, ok := st.Get("001", "feed")
	require.True(t, ok)
	assert.Equal(t, feedDue, due)
}

func TestReconcileZeroIntervalWithoutAccountMap(t *testing.T) {
	t.Parallel()
	cat := Catalog{TotalAccounts: 2, Intervals: map[string]int{"water": 0}}
	st := NewStore()

	rep := Reconcile(cat, st, mustDate(t, "2024-01-01"), &seqRand{})

	assert.False(t, rep.Changed())
	assert.Equal(t, 0, st.Len())
}

func TestReconcileNoAccounts(t *testing.T) {
	t.Parallel()
	cat := Catalog{TotalAccounts: 0, Intervals: map[string]int{"water": 3}}
	st := NewStore()

	rep := Reconcile(cat, st, mustDate(t, "2024-01-01"), &seqRand{})

	assert.Equal(t, 0, rep.Added)
	assert.Equal(t, 0, st.Len())
}

func TestReconcileShrinkingAccountsKeepsStaleEntries(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-01")
	cat := Catalog{TotalAccounts: 3, Intervals: map[string]int{"water": 2}}
	st := NewStore()
	Reconcile(cat, st, today, &seqRand{})

	cat.TotalAccounts = 1
	rep := Reconcile(cat, st, today, &seqRand{})

	assert.False(t, rep.Changed())
	assert.Equal(t, []string{"002", "003"}, rep.StaleAccounts)
	_, ok := st.Get("003", "water")
	assert.True(t, ok)
}

func TestDueSelection(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-05")
	st := NewStore()
	st.Set("002", "water", today)
	st.Set("002", "feed", today)
	st.Set("002", "walk", today.AddDays(1))
	st.Set("001", "water", today)
	st.Set("003", "water", today.AddDays(-1))
	st.AddAccount("004")

	assert.Equal(t, []string{"001", "002"}, st.DueAccounts(today))
	assert.Equal(t, []string{"feed", "water"}, st.DueTasks("002", today))
	assert.Empty(t, st.DueTasks("003", today))
	assert.Empty(t, st.DueTasks("missing", today))
}

func TestCompleteUsesTodayAndCurrentInterval(t *testing.T) {
	t.Parallel()
	st := NewStore()
	st.Set("001", "water", mustDate(t, "2024-01-01"))
	cat := Catalog{TotalAccounts: 1, Intervals: map[string]int{"water": 3}}

	next, err := Complete(cat, st, "001", "water", mustDate(t, "2024-01-05"))

	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", next.String())
	due, _ := st.Get("001", "water")
	assert.Equal(t, next, due)
}

func TestCompleteErrors(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-05")
	st := NewStore()
	st.Set("001", "water", today)
	st.Set("001", "gone", today)
	cat := Catalog{TotalAccounts: 1, Intervals: map[string]int{"water": 3}}

	_, err := Complete(cat, st, "002", "water", today)
	assert.ErrorIs(t, err, ErrNotScheduled)

	_, err = Complete(cat, st, "001", "gone", today)
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestCompleteRetiredTaskOnStaleAccount(t *testing.T) {
	t.Parallel()
	today := mustDate(t, "2024-01-05")
	cat := Catalog{TotalAccounts: 1, Intervals: map[string]int{"water": 0, "feed": 3}}
	st := NewStore()
	st.Set("003", "water", today)

	Reconcile(cat, st, today, NewRand())
	require.Equal(t, []string{"water"}, st.DueTasks("003", today))

	next, err := Complete(cat, st, "003", "water", today)

	require.NoError(t, err)
	assert.True(t, next.IsZero())
	_, ok := st.Get("003", "water")
	assert.False(t, ok)
	assert.Empty(t, st.DueTasks("003", today))
}

func TestCatalogValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Catalog{TotalAccounts: 2, Intervals: map[string]int{"a": 0, "b": 4}}.Validate())
	assert.Error(t, Catalog{TotalAccounts: -1}.Validate())
	assert.Error(t, Catalog{Intervals: map[string]int{"a": -2}}.Validate())
}

func TestDateArithmetic(t *testing.T) {
	t.Parallel()
	d := mustDate(t, "2024-02-28")
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.True(t, d.Before(d.AddDays(1)))

	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)

	var parsed Date
	require.NoError(t, parsed.UnmarshalText([]byte("2025-12-31")))
	b, err := parsed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", string(b))
}
