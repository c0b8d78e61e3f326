package todotxt

// Conventions defines the context/project markers the parser uses to derive
// energy, time, waiting, inbox, and connectivity classifications. The zero
// value is not useful; use DefaultConventions and override fields as needed.
type Conventions struct {
	// HighEnergyContexts and LowEnergyContexts classify Task.Energy.
	HighEnergyContexts []string
	LowEnergyContexts  []string

	// QuickContexts, MediumContexts, and DeepContexts classify Task.Time.
	QuickContexts  []string
	MediumContexts []string
	DeepContexts   []string

	// WaitingContexts and WaitingProjects mark a task as blocked on someone
	// else. Either convention sets IsWaiting.
	WaitingContexts []string
	WaitingProjects []string

	// InboxProjects mark a task as unprocessed.
	InboxProjects []string

	// OnlineContexts mark a task as requiring connectivity; offline-only
	// queries exclude these tasks.
	OnlineContexts []string
}

// DefaultConventions returns the standard marker tables.
func DefaultConventions() Conventions {
	return Conventions{
		HighEnergyContexts: []string{"focus", "creative", "complex", "brainstorm", "learn"},
		LowEnergyContexts:  []string{"routine", "admin", "communicate", "organize", "review"},
		QuickContexts:      []string{"quick", "call", "email"},
		MediumContexts:     []string{"medium", "meeting"},
		DeepContexts:       []string{"deep", "project"},
		WaitingContexts:    []string{"waiting"},
		WaitingProjects:    []string{"waiting"},
		InboxProjects:      []string{"in"},
		OnlineContexts:     []string{"online"},
	}
}

// classifyEnergy returns the energy level for a context list. When a task
// carries both high- and low-energy contexts the high table wins.
func (c Conventions) classifyEnergy(contexts []string) EnergyLevel {
	if intersects(contexts, c.HighEnergyContexts) {
		return EnergyHigh
	}
	if intersects(contexts, c.LowEnergyContexts) {
		return EnergyLow
	}
	return EnergyUnknown
}

// classifyTime returns the time estimate for a context list, checking the
// quick, medium, and deep tables in that order.
func (c Conventions) classifyTime(contexts []string) TimeEstimate {
	if intersects(contexts, c.QuickContexts) {
		return TimeQuick
	}
	if intersects(contexts, c.MediumContexts) {
		return TimeMedium
	}
	if intersects(contexts, c.DeepContexts) {
		return TimeDeep
	}
	return TimeUnknown
}

func (c Conventions) isWaiting(contexts, projects []string) bool {
	return intersects(contexts, c.WaitingContexts) || intersects(projects, c.WaitingProjects)
}

func (c Conventions) isInbox(projects []string) bool {
	return intersects(projects, c.InboxProjects)
}

// intersects reports whether the two string slices share at least one element.
func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
