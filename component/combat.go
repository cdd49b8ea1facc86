package component

// Faction identifies which side of a fight an event came from.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventCombatStart CombatEventType = "combat_start"
	EventWaveStart   CombatEventType = "wave_start"
	EventHit         CombatEventType = "hit"
	EventDeath       CombatEventType = "death"
	EventEnemyMove   CombatEventType = "enemy_move"
	EventCombatEnd   CombatEventType = "combat_end"
)

// CombatEvent is emitted by the combat manager as a session unfolds.
// Renderers and logs read it; nothing in the core depends on it.
type CombatEvent struct {
	Type     CombatEventType
	Attacker Faction
	// Enemy is the enemy index at the time of the event, -1 when not
	// applicable.
	Enemy  int
	Damage int
	Wave   int
	GridX  int
	GridY  int
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans events out to registered handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe registers a handler. Nil handlers are ignored.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
