package schedule

// Report summarizes what Reconcile changed.
type Report struct {
	// Added counts entries created for missing (account, task) pairs.
	Added int
	// Pruned counts entries whose task is no longer in the catalog.
	Pruned int
	// Retired counts entries removed because their task interval is 0.
	Retired int
	// StaleAccounts lists accounts above TotalAccounts that still hold
	// entries. They are left untouched.
	StaleAccounts []string
}

// Changed reports whether the store was mutated.
func (r Report) Changed() bool { return r.Added+r.Pruned+r.Retired > 0 }

// Reconcile aligns st with cat in place:
//
//  1. entries whose task is not in the catalog are removed;
//  2. entries of zero-interval tasks are removed for accounts 1..TotalAccounts;
//  3. every missing (account, task) pair with a nonzero interval is created,
//     due today plus a random offset in [0, interval).
//
// Existing entries are never rescheduled, so Reconcile is idempotent.
// Accounts above TotalAccounts are not pruned.
func Reconcile(cat Catalog, st *Store, today Date, rng Rand) Report {
	var rep Report

	for _, account := range st.Accounts() {
		for _, task := range st.Tasks(account) {
			if !cat.Has(task) {
				st.Delete(account, task)
				rep.Pruned++
			}
		}
	}

	accounts := cat.AccountIDs()
	for _, task := range cat.TaskNames() {
		interval := cat.Intervals[task]
		for _, account := range accounts {
			if interval == IntervalRetired {
				if st.Delete(account, task) {
					rep.Retired++
				}
				continue
			}
			if _, ok := st.Get(account, task); ok {
				continue
			}
			st.Set(account, task, today.AddDays(jitter(rng, interval)))
			rep.Added++
		}
	}

	rep.StaleAccounts = staleAccounts(cat, st)
	return rep
}

func staleAccounts(cat Catalog, st *Store) []string {
	known := make(map[string]struct{}, cat.TotalAccounts)
	for _, a := range cat.AccountIDs() {
		known[a] = struct{}{}
	}
	var out []string
	for _, a := range st.Accounts() {
		if _, ok := known[a]; ok {
			continue
		}
		if len(st.accounts[a]) > 0 {
			out = append(out, a)
		}
	}
	return out
}
