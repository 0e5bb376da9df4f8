package language

// Cycle is a fixed, non-empty ring of profiles with a current position.
// The profile list cannot change after construction.
type Cycle struct {
	profiles []*Profile
	current  int
}

// NewCycle creates a cycle positioned on the first profile.
func NewCycle(profiles ...*Profile) (*Cycle, error) {
	if len(profiles) == 0 {
		return nil, ErrEmptyCycle
	}
	owned := make([]*Profile, len(profiles))
	copy(owned, profiles)
	return &Cycle{profiles: owned}, nil
}

// Increment moves forward one position, wrapping to the start.
func (c *Cycle) Increment() *Profile {
	c.current = (c.current + 1) % len(c.profiles)
	return c.Current()
}

// Decrement moves back one position, wrapping to the end.
func (c *Cycle) Decrement() *Profile {
	c.current = (c.current - 1 + len(c.profiles)) % len(c.profiles)
	return c.Current()
}

func (c *Cycle) Current() *Profile {
	return c.profiles[c.current]
}

func (c *Cycle) Index() int {
	return c.current
}

func (c *Cycle) Len() int {
	return len(c.profiles)
}

// Profiles returns a copy of the ring in order.
func (c *Cycle) Profiles() []*Profile {
	out := make([]*Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}
