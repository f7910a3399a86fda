package gameplay

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/soccer/internal/config"
	"github.com/zeusync/soccer/internal/core/events/bus"
	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/obstacles"
	"github.com/zeusync/soccer/internal/core/observability/log"
)

// Module owns the frame and every robot facade for a game session and runs the
// control tick. Ticks are sequential; Module is not safe for concurrent use.
type Module struct {
	cfg        config.Gameplay
	log        log.Log
	events     bus.EventBus
	perception Perception
	planner    Planner

	frame     *frame.Frame
	self      []*Robot
	opponents []*Robot
	groups    []*obstacles.Group

	// per-tick obstacles to drop on the next rebuild, and whether our own
	// defense area is currently in each group
	dynamic   [][]uuid.UUID
	ownAreaIn []bool
	ownArea   *obstacles.Rect
	theirArea *obstacles.Rect

	behaviors map[int]Behavior
	digests   []uint64
	restart   bool
	subs      []bus.Subscription
	observer  bus.EventBusObserver
}

// NewModule builds facades for both teams and subscribes our robots to role changes.
func NewModule(cfg config.Gameplay, logger log.Log, events bus.EventBus, perception Perception, planner Planner) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if perception == nil || planner == nil {
		return nil, ErrMissingCollaborator
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if events == nil {
		events = bus.New()
	}
	m := &Module{
		cfg:        cfg,
		log:        logger,
		events:     events,
		perception: perception,
		planner:    planner,
		frame:      frame.New(cfg.RosterSize),
		self:       make([]*Robot, cfg.RosterSize),
		opponents:  make([]*Robot, cfg.RosterSize),
		groups:     make([]*obstacles.Group, cfg.RosterSize),
		behaviors:  make(map[int]Behavior),
		digests:    make([]uint64, cfg.RosterSize),
		dynamic:    make([][]uuid.UUID, cfg.RosterSize),
		ownAreaIn:  make([]bool, cfg.RosterSize),
	}
	m.ownArea, m.theirArea = defenseAreas(cfg)

	for id := 0; id < cfg.RosterSize; id++ {
		m.groups[id] = obstacles.NewGroup()
		if m.theirArea != nil {
			m.groups[id].Add(m.theirArea)
		}
		ours, err := NewRobot(id, true,
			WithRosterSize(cfg.RosterSize),
			WithPoseHistory(cfg.PoseHistory),
			WithObstacles(m.groups[id]),
			WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		theirs, err := NewRobot(id, false,
			WithRosterSize(cfg.RosterSize),
			WithPoseHistory(cfg.PoseHistory),
			WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		m.self[id], m.opponents[id] = ours, theirs

		sub, err := events.Subscribe(TypeRoleChanged, func(e bus.Event) error {
			ours.OnRoleChanged(e.Data().(RoleChanged).Role)
			return nil
		}, forRobot(id))
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("subscribe robot %d: %w", id, err)
		}
		logger.Debug("role changes subscribed", log.Robot(id, true), log.String("subscription", sub.ID()))
		m.subs = append(m.subs, sub)
	}
	m.observer = &logObserver{log: logger}
	events.AddObserver(m.observer)
	return m, nil
}

// Close drops the module's bus subscriptions and observer.
func (m *Module) Close() {
	for _, s := range m.subs {
		_ = m.events.Unsubscribe(s)
	}
	m.subs = nil
	if m.observer != nil {
		m.events.RemoveObserver(m.observer)
		m.observer = nil
	}
}

// Robot returns our facade for shell id.
func (m *Module) Robot(id int) (*Robot, error) {
	if id < 0 || id >= len(m.self) {
		return nil, fmt.Errorf("%w: self %d", ErrUnknownRobot, id)
	}
	return m.self[id], nil
}

// Opponent returns the opponent facade for shell id.
func (m *Module) Opponent(id int) (*Robot, error) {
	if id < 0 || id >= len(m.opponents) {
		return nil, fmt.Errorf("%w: opponent %d", ErrUnknownRobot, id)
	}
	return m.opponents[id], nil
}

// Frame exposes the frame read-only, e.g. for inspection between ticks.
func (m *Module) Frame() frame.View { return m.frame.View() }

// Obstacles implements ObstacleSource.
func (m *Module) Obstacles(id int) *obstacles.Group {
	if id < 0 || id >= len(m.groups) {
		return nil
	}
	return m.groups[id]
}

// SetBehavior installs the behavior run for robot id each tick; nil removes it.
func (m *Module) SetBehavior(id int, b Behavior) error {
	if id < 0 || id >= len(m.self) {
		return fmt.Errorf("%w: self %d", ErrUnknownRobot, id)
	}
	if b == nil {
		delete(m.behaviors, id)
		return nil
	}
	m.behaviors[id] = b
	return nil
}

// AssignRole gives robot id a new role. A change publishes TypeRoleChanged,
// which clears the robot's tactical flags; reassigning the same role does nothing.
func (m *Module) AssignRole(id int, role string) error {
	r, err := m.Robot(id)
	if err != nil {
		return err
	}
	if r.Role() == role {
		return nil
	}
	m.log.Info("role assigned", log.Robot(id, true), log.String("from", r.Role()), log.String("to", role))
	return m.events.Publish(bus.NewEvent(TypeRoleChanged, eventSource, RoleChanged{
		RobotID:  id,
		Previous: r.Role(),
		Role:     role,
	}))
}

// SetRestart switches restart clearance rules on or off.
func (m *Module) SetRestart(active bool) error {
	if m.restart == active {
		return nil
	}
	m.restart = active
	return m.events.Publish(bus.NewEvent(TypeRestart, eventSource, Restart{Active: active}))
}

func (m *Module) Restart() bool { return m.restart }

// Tick runs one control cycle: refresh perception, run behaviors with each
// facade bound to its record, record poses, rebuild obstacles, then hand the
// frame to the planner. A failing behavior only idles its own robot.
func (m *Module) Tick(now time.Time) error {
	m.frame.Advance(now)
	if err := m.perception.Refresh(m.frame); err != nil {
		return fmt.Errorf("tick %d: perception: %w", m.frame.Tick, err)
	}
	m.stampRecords()

	if err := m.bindAll(); err != nil {
		m.unbindAll()
		return fmt.Errorf("tick %d: %w", m.frame.Tick, err)
	}
	for _, r := range m.self {
		m.runBehavior(r)
	}
	for _, r := range m.allRobots() {
		if err := r.UpdatePoseHistory(); err != nil {
			m.unbindAll()
			return fmt.Errorf("tick %d: %w", m.frame.Tick, err)
		}
	}
	m.unbindAll()

	m.rebuildObstacles()
	m.noteCommandChanges()

	if err := m.planner.Execute(m.frame.View(), m); err != nil {
		return fmt.Errorf("tick %d: planner: %w", m.frame.Tick, err)
	}
	return nil
}

// stampRecords dates every perceived state with the tick time so pose history
// stays time-ordered whatever perception wrote.
func (m *Module) stampRecords() {
	for _, rec := range m.frame.SelfRecords() {
		rec.State.Stamp = m.frame.Stamp
	}
	for _, rec := range m.frame.OpponentRecords() {
		rec.State.Stamp = m.frame.Stamp
	}
}

func (m *Module) runBehavior(r *Robot) {
	b, ok := m.behaviors[r.ID()]
	if !ok {
		return
	}
	if err := b.Run(r); err != nil {
		m.log.Warn("behavior failed, robot idled",
			log.Robot(r.ID(), true),
			log.Uint64("tick", m.frame.Tick),
			log.Error(err),
		)
		_ = r.ResetMotionCommand()
	}
}

func (m *Module) bindAll() error {
	for _, r := range m.self {
		rec, _ := m.frame.Self(r.ID())
		if err := r.Bind(rec); err != nil {
			return err
		}
	}
	for _, r := range m.opponents {
		rec, _ := m.frame.Opponent(r.ID())
		if err := r.Bind(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) unbindAll() {
	for _, r := range m.allRobots() {
		r.Unbind()
	}
}

func (m *Module) allRobots() []*Robot {
	out := make([]*Robot, 0, len(m.self)+len(m.opponents))
	out = append(out, m.self...)
	return append(out, m.opponents...)
}

func (m *Module) noteCommandChanges() {
	for i, rec := range m.frame.SelfRecords() {
		d := rec.Cmd.Digest()
		if d == m.digests[i] {
			continue
		}
		m.digests[i] = d
		m.log.Debug("command changed",
			log.Robot(rec.ID, true),
			log.Uint64("tick", m.frame.Tick),
			log.String("motion", string(rec.Cmd.Kind())),
			log.Float64("vscale", rec.Cmd.VScale),
			log.Int("obstacles", m.groups[i].Len()),
		)
	}
}
