package component

// Actor is the capability shared by the player and enemies: something that
// follows a grid path and has a health pool.
type Actor interface {
	Step()
	SetPath(path []PathNode)
	IsMoving() bool
	Position() (float64, float64)
	HealthPool() *Health
}

// HealthComponent exposes health operations for combat systems.
type HealthComponent interface {
	IsAlive() bool
	ApplyDamage(amount int) bool
	CurrentHP() int
	MaxHP() int
	SetCurrentHP(v int)
}
