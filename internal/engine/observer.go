package engine

import (
	"reflect"
	"time"
)

// EventType names a registry change on a Database.
type EventType string

const (
	EventTypeAdded    EventType = "type_added"
	EventTypeRejected EventType = "type_rejected"
	EventBulkStart    EventType = "bulk_start"
	EventBulkEnd      EventType = "bulk_end"
)

// Event describes one change observed on a Database.
type Event struct {
	Type      EventType   // Type of event
	OpID      string      // Groups the events of one bulk call (empty otherwise)
	Op        string      // Operation that produced the event
	Name      string      // Name of the type group involved, if any
	Timestamp time.Time   // When the event occurred
	Err       error       // Failure, for rejected and unsuccessful bulk events
	Data      interface{} // Event-specific payload
}

// Observer receives Database events synchronously, in order.
type Observer interface {
	OnEvent(event Event)
}

// AddObserver registers an observer to receive events
func (db *Database) AddObserver(observer Observer) {
	db.observers = append(db.observers, observer)
}

// RemoveObserver unregisters an observer. Observers are matched with ==, so
// only comparable observers (pointers, or structs without slices, maps or
// funcs) can be removed; any other observer is left registered.
func (db *Database) RemoveObserver(observer Observer) {
	if observer == nil || !reflect.TypeOf(observer).Comparable() {
		return
	}
	for i, o := range db.observers {
		if o == observer {
			db.observers = append(db.observers[:i], db.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (db *Database) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range db.observers {
		observer.OnEvent(event)
	}
}
