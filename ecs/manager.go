package ecs

import (
	"cmp"
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Manager owns the entity registry, the component stores, the systems and the
// event bus, and drives the frame update. A Manager is not safe for
// concurrent use: every call must come from the goroutine running the frames.
type Manager struct {
	registry *EntityRegistry
	stores   *intmap.Map[ComponentType, *Store]
	events   *EventBus
	commands *Commands

	// entries is in insertion order. order is the execution order fixed
	// by InitSystems.
	entries     []*systemEntry
	order       []*systemEntry
	initialized bool
	frames      int64

	log *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger makes the manager log lifecycle events to log.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registry: NewEntityRegistry(),
		stores:   intmap.New[ComponentType, *Store](32),
		events:   NewEventBus(),
		commands: newCommands(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEntity allocates a new entity.
func (m *Manager) CreateEntity() Entity {
	return m.registry.Create()
}

// DestroyEntity removes e from the alive entities. Its components stay in
// their stores and its system subscriptions stay in place: callers extract
// and unsubscribe first, or use RetireEntity.
func (m *Manager) DestroyEntity(e Entity) bool {
	return m.registry.Destroy(e)
}

// Alive reports whether e is alive.
func (m *Manager) Alive(e Entity) bool {
	return m.registry.Alive(e)
}

// Entities returns a snapshot of the alive entities in ascending order.
func (m *Manager) Entities() []Entity {
	return m.registry.Entities()
}

// ComponentTypes returns the component types e currently carries.
func (m *Manager) ComponentTypes(e Entity) []ComponentType {
	return m.registry.ComponentTypes(e)
}

// RetireEntity fully releases e: its component is extracted from every store,
// e is unsubscribed from every system and then destroyed. The extracted
// components are returned by type; the result is nil if e was not alive.
func (m *Manager) RetireEntity(e Entity) map[ComponentType]Component {
	if !m.registry.Alive(e) {
		return nil
	}

	extracted := make(map[ComponentType]Component)
	for t, store := range m.stores.All() {
		if c, ok := store.Extract(e); ok {
			extracted[t] = c
		}
	}

	unsubscribed := m.UnsubscribeEntity(e)
	m.registry.Destroy(e)

	m.log.Debug("entity retired",
		zap.Uint64("entity", uint64(e)),
		zap.Int("components", len(extracted)),
		zap.Int("systems", unsubscribed))
	return extracted
}

// CreateStoreFor creates the store of t. It returns false if t is invalid or
// the store already exists, which is left untouched.
func (m *Manager) CreateStoreFor(t ComponentType) bool {
	if t == InvalidComponent {
		return false
	}
	_, created := m.stores.PutIfNotExists(t, NewStore())
	return created
}

// Store returns the store of t, or nil if it was not created.
func (m *Manager) Store(t ComponentType) *Store {
	store, ok := m.stores.Get(t)
	if !ok {
		return nil
	}
	return store
}

func (m *Manager) storeFor(e Entity, t ComponentType) *Store {
	if e == InvalidEntity || t == InvalidComponent {
		return nil
	}
	return m.Store(t)
}

// Component returns the component of type t of e, or nil.
func (m *Manager) Component(e Entity, t ComponentType) Component {
	store := m.storeFor(e, t)
	if store == nil {
		return nil
	}
	return store.Get(e)
}

// AddComponent hands c to the store of t for the alive entity e. It returns
// false if e is not alive, t has no store, or e already has such a component.
func (m *Manager) AddComponent(e Entity, t ComponentType, c Component) bool {
	store := m.storeFor(e, t)
	if store == nil || !m.registry.Alive(e) {
		return false
	}
	if !store.Add(e, c) {
		return false
	}
	m.registry.attach(e, t)
	return true
}

// ExtractComponent detaches the component of type t from e and returns it,
// or nil. It also works on destroyed entities so they can be cleaned up.
func (m *Manager) ExtractComponent(e Entity, t ComponentType) Component {
	store := m.storeFor(e, t)
	if store == nil {
		return nil
	}
	c, ok := store.Extract(e)
	if !ok {
		return nil
	}
	m.registry.detach(e, t)
	return c
}

// RemoveComponent drops the component of type t of e.
func (m *Manager) RemoveComponent(e Entity, t ComponentType) bool {
	store := m.storeFor(e, t)
	if store == nil || !store.Remove(e) {
		return false
	}
	m.registry.detach(e, t)
	return true
}

// AddSystem registers sys. Systems added after InitSystems are initialized
// right away and run after every system ordered by InitSystems.
func (m *Manager) AddSystem(sys System) bool {
	if sys == nil {
		return false
	}

	entry := newSystemEntry(sys)
	m.entries = append(m.entries, entry)

	m.log.Debug("system added",
		zap.String("system", entry.stats.name),
		zap.Stringer("kind", sys.Kind()),
		zap.Int("priority", sys.Priority()))

	if m.initialized {
		m.order = append(m.order, entry)
		sys.Init()
	}
	return true
}

// InitSystems fixes the execution order, a stable sort by priority, and
// initializes every system in that order. Only the first call has an effect.
func (m *Manager) InitSystems() {
	if m.initialized {
		return
	}

	m.order = slices.Clone(m.entries)
	slices.SortStableFunc(m.order, func(a, b *systemEntry) int {
		return cmp.Compare(a.system.Priority(), b.system.Priority())
	})
	m.initialized = true

	names := make([]string, len(m.order))
	for i, entry := range m.order {
		names[i] = entry.stats.name
	}
	m.log.Debug("systems initialized", zap.Strings("order", names))

	for _, entry := range m.order {
		entry.system.Init()
	}
}

// Systems returns the systems in execution order.
func (m *Manager) Systems() []System {
	schedule := m.schedule()
	systems := make([]System, len(schedule))
	for i, entry := range schedule {
		systems[i] = entry.system
	}
	return systems
}

func (m *Manager) schedule() []*systemEntry {
	if m.initialized {
		return m.order
	}
	return m.entries
}

// SubscribeEntityToSystems offers e to every system: systems whose needed
// components are all in types are asked to add e, the others to remove it.
// It returns how many systems were asked to add e.
func (m *Manager) SubscribeEntityToSystems(e Entity, types []ComponentType) int {
	if !m.registry.Alive(e) {
		return 0
	}

	set := slices.Clone(types)
	slices.Sort(set)
	set = slices.Compact(set)

	n := 0
	for _, entry := range m.schedule() {
		if includes(set, entry.system.NeededComponents()) {
			entry.system.AddEntity(e)
			n++
		} else {
			entry.system.RemoveEntity(e)
		}
	}
	return n
}

// SubscribeEntity is SubscribeEntityToSystems with the component types
// recorded for e.
func (m *Manager) SubscribeEntity(e Entity) int {
	return m.SubscribeEntityToSystems(e, m.registry.ComponentTypes(e))
}

// UnsubscribeEntity removes e from every system and returns how many held it.
func (m *Manager) UnsubscribeEntity(e Entity) int {
	if e == InvalidEntity {
		return 0
	}
	n := 0
	for _, entry := range m.schedule() {
		if entry.system.RemoveEntity(e) {
			n++
		}
	}
	return n
}

// SetFocus moves the focus of every local system to (x, y) and returns how
// many accepted it.
func (m *Manager) SetFocus(x, y int) int {
	v := &focusVisitor{x: x, y: y}
	for _, entry := range m.schedule() {
		entry.system.Accept(v)
	}
	return v.accepted
}

// UpdateSystems runs one frame: PreUpdate on every system, then Update on
// every system, then PostUpdate on every system, each pass in execution
// order. Deferred commands are applied afterwards.
func (m *Manager) UpdateSystems(delta float64) {
	if delta < 0 {
		delta = 0
	}

	schedule := m.schedule()

	for _, entry := range schedule {
		entry.timed(func() { entry.system.PreUpdate(delta) })
	}
	for _, entry := range schedule {
		entry.timed(func() { entry.system.Update(delta) })
	}
	for _, entry := range schedule {
		entry.timed(func() { entry.system.PostUpdate(delta) })
	}
	for _, entry := range schedule {
		entry.endFrame()
	}
	m.frames++

	m.commands.Flush(m)
}

// Events returns the event bus.
func (m *Manager) Events() *EventBus {
	return m.events
}

// RegisterHandler appends h to the handlers of t.
func (m *Manager) RegisterHandler(t EventType, h EventHandler) bool {
	return m.events.RegisterHandler(t, h)
}

// TriggerEvent sends ev from origin to the handlers of t.
func (m *Manager) TriggerEvent(origin Entity, t EventType, ev Event) int {
	n, dropped := m.events.trigger(origin, t, ev)
	if dropped > 0 {
		m.log.Debug("event handlers dropped",
			zap.Uint64("event", uint64(t)),
			zap.Int("count", dropped))
	}
	return n
}

// Commands returns the buffer of operations applied at the end of the frame.
func (m *Manager) Commands() *Commands {
	return m.commands
}

type focusVisitor struct {
	x, y     int
	accepted int
}

func (v *focusVisitor) VisitGlobal(*GlobalSystem) {}
func (v *focusVisitor) VisitSingle(*SingleSystem) {}
func (v *focusVisitor) VisitCustom(*CustomSystem) {}

func (v *focusVisitor) VisitLocal(s *LocalSystem) {
	if s.SetFocus(v.x, v.y) {
		v.accepted++
	}
}
