package ecs

// CustomSystem leaves membership entirely to the embedding type: until it
// defines AddEntity, RemoveEntity and Update, the system accepts nothing and
// does nothing. The updater passed at construction is available to those
// overrides through UpdateEntity.
type CustomSystem struct {
	baseSystem
}

// NewCustomSystem creates a custom system.
func NewCustomSystem(priority int, needed []ComponentType, updater EntityUpdater) *CustomSystem {
	return &CustomSystem{
		baseSystem: newBaseSystem(priority, needed, updater),
	}
}

func (s *CustomSystem) Kind() Kind { return KindCustom }

func (s *CustomSystem) Accept(v Visitor) { v.VisitCustom(s) }

func (s *CustomSystem) AddEntity(e Entity) bool { return false }

func (s *CustomSystem) RemoveEntity(e Entity) bool { return false }

func (s *CustomSystem) Update(delta float64) {}

// UpdateEntity forwards to the updater given at construction, if any.
func (s *CustomSystem) UpdateEntity(delta float64, e Entity) {
	s.updateEntity(delta, e)
}
