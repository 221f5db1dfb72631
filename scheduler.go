package canopy

// ChannelKind distinguishes the animated property of an owner. Values below
// ChannelUser are used by the Element tween helpers; callers may define
// their own kinds from ChannelUser upward.
type ChannelKind uint16

const (
	ChannelPosition ChannelKind = iota + 1
	ChannelRotation
	ChannelScale
	ChannelAlpha
	ChannelColor
	ChannelUser ChannelKind = 0x100
)

// Channel identifies at most one in-flight animation.
type Channel struct {
	Owner OwnerID
	Kind  ChannelKind
}

// TaskState is the lifecycle of an AnimationTask.
type TaskState uint8

const (
	TaskPending   TaskState = iota // registered, elapsed < duration
	TaskCompleted                  // reached the end; completion callback ran
	TaskCancelled                  // removed or replaced; callback never runs
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskCompleted:
		return "completed"
	case TaskCancelled:
		return "cancelled"
	}
	return "unknown"
}

// AnimationTask is a running animation. The from/to values live inside the
// step closure so one task type serves every value kind.
type AnimationTask struct {
	channel    Channel
	elapsed    float64
	duration   float64
	step       func(t float64)
	onComplete func()
	state      TaskState
	settled    bool // final value already applied (zero-duration tasks)
}

// Channel returns the task's channel.
func (a *AnimationTask) Channel() Channel { return a.channel }

// State returns the task's lifecycle state.
func (a *AnimationTask) State() TaskState { return a.state }

// Elapsed returns the elapsed time in milliseconds.
func (a *AnimationTask) Elapsed() float64 { return a.elapsed }

// Duration returns the total duration in milliseconds.
func (a *AnimationTask) Duration() float64 { return a.duration }

// Progress returns elapsed/duration clamped to [0, 1].
func (a *AnimationTask) Progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return clamp01(a.elapsed / a.duration)
}

// deferredAction is a callback waiting for a later Pump.
type deferredAction struct {
	fn    func()
	delay int
}

// Scheduler drives animations and deferred actions from an externally pumped
// clock. It is single-threaded: everything runs synchronously inside Pump.
//
// Tasks are advanced in registration order. A completion callback always
// runs after its task has left the registry, so it may start a new task on
// the same channel.
type Scheduler struct {
	tasks   map[Channel]*AnimationTask
	order   []*AnimationTask
	actions []deferredAction
	pumping bool
	ticks   uint64
	clears  uint64 // bumped by Clear so an in-flight Pump can notice
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[Channel]*AnimationTask)}
}

// Ticks returns the number of completed Pump calls.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Len returns the number of pending animation tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// PendingActions returns the number of queued deferred actions.
func (s *Scheduler) PendingActions() int { return len(s.actions) }

// StartAnimation animates a float64 property. interp is called with the
// clamped progress t and must apply the value; its return value is ignored
// by the scheduler. See Animate for the generic form.
func (s *Scheduler) StartAnimation(owner OwnerID, kind ChannelKind, from, to, durationMs float64, interp Interpolator[float64], onComplete func()) *AnimationTask {
	return Animate(s, owner, kind, from, to, durationMs, interp, onComplete)
}

// Animate starts an animation of any value type on (owner, kind), replacing
// any task already on that channel without running its completion callback.
//
// With durationMs <= 0, interp runs once with t=1 before Animate returns and
// onComplete runs on the next Pump.
func Animate[T any](s *Scheduler, owner OwnerID, kind ChannelKind, from, to T, durationMs float64, interp Interpolator[T], onComplete func()) *AnimationTask {
	task := &AnimationTask{
		channel:    Channel{Owner: owner, Kind: kind},
		duration:   durationMs,
		onComplete: onComplete,
		step: func(t float64) {
			interp(t, from, to)
		},
	}
	s.add(task)
	if durationMs <= 0 {
		task.step(1)
		task.settled = true
	}
	return task
}

func (s *Scheduler) add(task *AnimationTask) {
	if old, ok := s.tasks[task.channel]; ok {
		old.state = TaskCancelled
	}
	s.tasks[task.channel] = task
	s.order = append(s.order, task)
}

// RemoveAnimation cancels the task on (owner, kind) without running its
// completion callback. It reports whether a task was removed.
func (s *Scheduler) RemoveAnimation(owner OwnerID, kind ChannelKind) bool {
	ch := Channel{Owner: owner, Kind: kind}
	task, ok := s.tasks[ch]
	if !ok {
		return false
	}
	task.state = TaskCancelled
	delete(s.tasks, ch)
	return true
}

// RemoveOwner cancels every task of owner. Used when the owner is disposed.
func (s *Scheduler) RemoveOwner(owner OwnerID) int {
	n := 0
	for ch, task := range s.tasks {
		if ch.Owner == owner {
			task.state = TaskCancelled
			delete(s.tasks, ch)
			n++
		}
	}
	return n
}

// IsAnimating reports whether (owner, kind) has a pending task.
func (s *Scheduler) IsAnimating(owner OwnerID, kind ChannelKind) bool {
	_, ok := s.tasks[Channel{Owner: owner, Kind: kind}]
	return ok
}

// Task returns the pending task on (owner, kind), or nil.
func (s *Scheduler) Task(owner OwnerID, kind ChannelKind) *AnimationTask {
	return s.tasks[Channel{Owner: owner, Kind: kind}]
}

// ScheduleAction queues fn to run on a later Pump. It never runs during the
// call that scheduled it, nor during a Pump already in progress. With
// delayTicks = N the action skips N pumps first and runs on pump N+1.
func (s *Scheduler) ScheduleAction(fn func(), delayTicks int) {
	if fn == nil {
		return
	}
	if delayTicks < 0 {
		delayTicks = 0
	}
	s.actions = append(s.actions, deferredAction{fn: fn, delay: delayTicks})
}

// Pump advances every pending task by elapsedMs, completes those that
// reached their duration, then runs due deferred actions. Negative elapsed
// times are treated as zero.
func (s *Scheduler) Pump(elapsedMs float64) {
	if s.pumping {
		panic("canopy: Scheduler.Pump called re-entrantly")
	}
	s.pumping = true
	defer func() { s.pumping = false }()

	if elapsedMs < 0 {
		elapsedMs = 0
	}

	// Actions queued from here on, including by completion callbacks, wait
	// for the next Pump.
	queued := len(s.actions)
	clears := s.clears
	s.advanceTasks(elapsedMs)
	if s.clears != clears {
		queued = 0
	}
	s.runActions(queued)
	s.ticks++
}

func (s *Scheduler) advanceTasks(elapsedMs float64) {
	// Tasks registered by callbacks during this pass wait for the next Pump.
	// Callbacks may append to or reset s.order, so walk a snapshot.
	order := s.order[:len(s.order):len(s.order)]
	for _, task := range order {
		if task.state != TaskPending || s.tasks[task.channel] != task {
			continue
		}
		task.elapsed += elapsedMs
		t := task.Progress()
		if !task.settled {
			task.step(t)
		}
		if t < 1 {
			continue
		}
		// The step callback may have cancelled or replaced this task.
		if task.state != TaskPending || s.tasks[task.channel] != task {
			continue
		}
		delete(s.tasks, task.channel)
		task.state = TaskCompleted
		if task.onComplete != nil {
			task.onComplete()
		}
	}
	s.compactOrder()
}

// compactOrder drops finished tasks from the order slice, keeping the
// relative order of the rest.
func (s *Scheduler) compactOrder() {
	kept := s.order[:0]
	for _, task := range s.order {
		if task.state == TaskPending && s.tasks[task.channel] == task {
			kept = append(kept, task)
		}
	}
	clear(s.order[len(kept):])
	s.order = kept
}

func (s *Scheduler) runActions(n int) {
	if n > len(s.actions) {
		n = len(s.actions)
	}
	var due []func()
	kept := make([]deferredAction, 0, len(s.actions))
	for i := 0; i < n; i++ {
		a := s.actions[i]
		if a.delay > 0 {
			a.delay--
			kept = append(kept, a)
			continue
		}
		due = append(due, a.fn)
	}
	s.actions = s.actions[n:]
	clears := s.clears
	for _, fn := range due {
		fn()
		if s.clears != clears {
			// Clear dropped the rest of this pass along with the queue.
			return
		}
	}
	s.actions = append(kept, s.actions...)
}

// Clear cancels every task and drops every queued action. Called from a
// callback during Pump, it also stops the rest of that Pump: no further
// completion callbacks or deferred actions run.
func (s *Scheduler) Clear() {
	for ch, task := range s.tasks {
		task.state = TaskCancelled
		delete(s.tasks, ch)
	}
	s.order = nil
	s.actions = nil
	s.clears++
}
