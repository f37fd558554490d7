package schedule

// DueAccounts returns every account with at least one task due exactly on
// day, in sorted order.
func (s *Store) DueAccounts(day Date) []string {
	var out []string
	for _, account := range s.Accounts() {
		for _, due := range s.accounts[account] {
			if due == day {
				out = append(out, account)
				break
			}
		}
	}
	return out
}

// DueTasks returns the tasks of account due exactly on day, in sorted order.
func (s *Store) DueTasks(account string, day Date) []string {
	var out []string
	for _, task := range s.Tasks(account) {
		if s.accounts[account][task] == day {
			out = append(out, task)
		}
	}
	return out
}
