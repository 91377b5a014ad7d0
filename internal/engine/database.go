package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DatabaseInfo aggregates a Database's type groups.
type DatabaseInfo struct {
	NumTypes    int
	TotalTables int
}

// Database is the root container. It owns TypeGroups by name.
type Database struct {
	id        string
	name      string
	createdAt time.Time
	types     map[string]*TypeGroup
	observers []Observer
}

// NewDatabase creates an empty database stamped with the current UTC time.
func NewDatabase(name string) *Database {
	return &Database{
		id:        uuid.New().String(),
		name:      name,
		createdAt: time.Now().UTC(),
		types:     make(map[string]*TypeGroup),
		observers: make([]Observer, 0),
	}
}

func (db *Database) ID() string           { return db.id }
func (db *Database) Name() string         { return db.name }
func (db *Database) CreatedAt() time.Time { return db.createdAt }

// NumTypes returns the number of registered type groups.
func (db *Database) NumTypes() int { return len(db.types) }

// AddType registers tg under its name.
func (db *Database) AddType(tg *TypeGroup) error {
	return db.register("add_type", tg)
}

// CreateType registers a new empty type group and returns it.
func (db *Database) CreateType(name string, info ...InfoPair) (*TypeGroup, error) {
	tg := NewTypeGroup(name, info...)
	if err := db.register("create_type", tg); err != nil {
		return nil, err
	}
	return tg, nil
}

func (db *Database) register(op string, tg *TypeGroup) error {
	if _, exists := db.types[tg.Name()]; exists {
		err := newDuplicateError(op, db.name, tg.Name())
		db.notify(Event{Type: EventTypeRejected, Op: op, Name: tg.Name(), Err: err})
		return err
	}
	db.types[tg.Name()] = tg
	db.notify(Event{Type: EventTypeAdded, Op: op, Name: tg.Name()})
	return nil
}

// GetType returns the live type group for mutation.
func (db *Database) GetType(name string) (*TypeGroup, error) {
	tg, ok := db.types[name]
	if !ok {
		return nil, newNotFoundError("get_type", db.name, name)
	}
	return tg, nil
}

// SearchType returns a detached copy of the type group.
func (db *Database) SearchType(name string) (*TypeGroup, error) {
	tg, ok := db.types[name]
	if !ok {
		return nil, newNotFoundError("search_type", db.name, name)
	}
	return tg.Clone(), nil
}

// TypeNames returns the registered type group names, sorted.
func (db *Database) TypeNames() []string {
	names := make([]string, 0, len(db.types))
	for name := range db.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info reports the type group count and the sum of their table counts.
func (db *Database) Info() DatabaseInfo {
	info := DatabaseInfo{NumTypes: len(db.types)}
	for _, tg := range db.types {
		info.TotalTables += tg.NumTables()
	}
	return info
}
