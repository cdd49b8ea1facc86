package component

// Health is a reusable hit-point pool for the player and enemies.
// Current may drop below zero; anything at or under zero counts as dead.
type Health struct {
	Max     int
	Current int

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the pool still has hit points.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// IsDead reports whether the pool is at or below zero.
func (h *Health) IsDead() bool {
	return !h.IsAlive()
}

// ApplyDamage subtracts amount. Returns true if this call brought the pool
// to zero or below.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || amount <= 0 {
		return false
	}
	wasAlive := h.Current > 0
	h.Current -= amount
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if wasAlive && h.Current <= 0 {
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
		return true
	}
	return false
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Current <= 0 || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// CurrentHP returns the current health value.
func (h *Health) CurrentHP() int {
	if h == nil {
		return 0
	}
	return h.Current
}

// MaxHP returns the maximum health value.
func (h *Health) MaxHP() int {
	if h == nil {
		return 0
	}
	return h.Max
}

// SetCurrentHP sets the current health value. Values above Max are clamped;
// negative values are kept so overkill stays visible.
func (h *Health) SetCurrentHP(v int) {
	if h == nil {
		return
	}
	h.Current = v
	if h.Max > 0 && h.Current > h.Max {
		h.Current = h.Max
	}
}

// SetMaxHP sets the maximum health value and clamps Current if needed.
func (h *Health) SetMaxHP(v int) {
	if h == nil {
		return
	}
	h.Max = v
	if h.Max <= 0 {
		h.Max = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Fraction returns Current/Max in [0,1] for health bars.
func (h *Health) Fraction() float32 {
	if h == nil || h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return float32(h.Current) / float32(h.Max)
}
