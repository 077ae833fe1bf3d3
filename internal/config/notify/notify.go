// Package notify provides change notification for dashboard edits.
//
// Components subscribe to configuration changes and receive callbacks when
// fields are set, toggled, reset, or reloaded from disk.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a field value was explicitly set.
	ChangeSet ChangeType = iota

	// ChangeToggle indicates a field's override flag was flipped.
	ChangeToggle

	// ChangeReset indicates one or all fields were reset to defaults.
	ChangeReset

	// ChangePreset indicates a preset was applied.
	ChangePreset

	// ChangeReload indicates the configuration was reloaded from disk.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeToggle:
		return "toggle"
	case ChangeReset:
		return "reset"
	case ChangePreset:
		return "preset"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// ID uniquely identifies the event for correlation in logs.
	ID string

	// FieldID is the changed field. Empty for reset-all, preset, and
	// reload events.
	FieldID string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous effective value (may be nil).
	OldValue any

	// NewValue is the new effective value (may be nil).
	NewValue any

	// Source identifies where the change came from (session ID, file path,
	// or preset name).
	Source string
}

// NewChange creates a change event with a fresh ID.
func NewChange(fieldID string, typ ChangeType, oldValue, newValue any, source string) Change {
	return Change{
		ID:       uuid.NewString(),
		FieldID:  fieldID,
		Type:     typ,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	}
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	fieldID  string
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all changes
	globalObservers map[uint64]Observer

	// Field-specific observers
	fieldObservers map[string]map[uint64]Observer

	// Next subscription ID
	nextID uint64

	// Whether to notify synchronously or asynchronously
	async bool

	// Buffer for async notifications
	buffer chan Change

	// Done channel for shutdown
	done chan struct{}

	// Wait group for async goroutine
	wg sync.WaitGroup

	// Closed flag for idempotent Close
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		fieldObservers:  make(map[string]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{
		id:       id,
		notifier: n,
	}
}

// SubscribeField registers an observer for changes to a specific field.
func (n *Notifier) SubscribeField(fieldID string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.fieldObservers[fieldID] == nil {
		n.fieldObservers[fieldID] = make(map[uint64]Observer)
	}
	n.fieldObservers[fieldID][id] = observer

	return &Subscription{
		id:       id,
		fieldID:  fieldID,
		notifier: n,
	}
}

// Notify sends a change notification to all relevant observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// NotifySet is a convenience method for explicit set changes.
func (n *Notifier) NotifySet(fieldID string, oldValue, newValue any, source string) {
	n.Notify(NewChange(fieldID, ChangeSet, oldValue, newValue, source))
}

// NotifyToggle is a convenience method for override toggles.
func (n *Notifier) NotifyToggle(fieldID string, explicit bool, source string) {
	n.Notify(NewChange(fieldID, ChangeToggle, !explicit, explicit, source))
}

// NotifyReset is a convenience method for resets.
// An empty fieldID indicates a reset of all fields.
func (n *Notifier) NotifyReset(fieldID string, oldValue any, source string) {
	n.Notify(NewChange(fieldID, ChangeReset, oldValue, nil, source))
}

// NotifyPreset is a convenience method for preset application.
func (n *Notifier) NotifyPreset(presetName string) {
	n.Notify(NewChange("", ChangePreset, nil, nil, presetName))
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(NewChange("", ChangeReload, nil, nil, source))
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for fieldID, observers := range n.fieldObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.fieldObservers, fieldID)
		}
	}
}

// deliverChange sends a change to all matching observers.
func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()

	var observers []Observer

	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}

	if change.FieldID != "" {
		if fieldObs, ok := n.fieldObservers[change.FieldID]; ok {
			for _, obs := range fieldObs {
				observers = append(observers, obs)
			}
		}
	} else {
		// Broadcast events (reset-all, preset, reload) reach every
		// field observer too.
		for _, fieldObs := range n.fieldObservers {
			for _, obs := range fieldObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}
