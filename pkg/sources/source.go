// Package sources turns hotel operational exports into normalized records.
// Every export type is one Source: it decodes its file format, checks that
// the expected structure is present and returns a Dataset holding fixed
// record shapes. Nothing downstream ever sees the raw tree.
//
// Example usage:
//
//	reg := sources.NewRegistry()
//	src, err := reg.Lookup(sources.InhouseID)
//	if err != nil {
//	    return err
//	}
//	ds, err := src.Parse(ctx, file)
package sources

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/records"
)

// ID represents the identifier of an export source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Source IDs.
const (
	InhouseID  ID = ID(records.SourceInhouse)
	KBSID      ID = ID(records.SourceKBS)
	PoliceID   ID = ID(records.SourcePolice)
	RoutingID  ID = ID(records.SourceRouting)
	CashringID ID = ID(records.SourceCashring)
)

// IDs returns all source IDs in load order.
func IDs() []ID {
	return []ID{
		InhouseID,
		KBSID,
		PoliceID,
		RoutingID,
		CashringID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// ParseID validates a user supplied source name.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if !id.IsValid() {
		return "", errors.UnsupportedSource(s)
	}
	return id, nil
}

// Source parses one kind of export.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Parse decodes the export and normalizes it into records. A structurally
	// wrong export yields an *errors.ShapeError.
	Parse(ctx context.Context, r io.Reader) (Dataset, error)
}

// Registry is a thread-safe lookup table from ID to Source.
type Registry struct {
	mu      sync.RWMutex
	sources map[ID]Source
}

// NewRegistry creates a registry holding the built-in sources configured
// with opts.
func NewRegistry(opts ...Option) *Registry {
	cfg := newConfig(opts...)
	r := &Registry{sources: make(map[ID]Source)}
	r.Set(&Inhouse{})
	r.Set(&KBS{})
	r.Set(&Police{})
	r.Set(&Routing{PseudoRoomFloor: cfg.pseudoRoomFloor})
	r.Set(&Cashring{})
	return r
}

// Lookup returns the source registered for id.
func (r *Registry) Lookup(id ID) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, found := r.sources[id]
	if !found {
		return nil, errors.UnsupportedSource(id.String())
	}
	return src, nil
}

// Set registers src under its own ID, replacing any previous source.
func (r *Registry) Set(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[src.ID()] = src
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// IDs returns the registered IDs in load order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.sources))
	for _, id := range IDs() {
		if _, ok := r.sources[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Option configures the built-in sources.
type Option func(*config)

type config struct {
	pseudoRoomFloor int
}

// DefaultPseudoRoomFloor is the first room number treated as a pseudo room
// (house accounts, posting masters) rather than a guest room.
const DefaultPseudoRoomFloor = 9000

func newConfig(opts ...Option) *config {
	cfg := &config{pseudoRoomFloor: DefaultPseudoRoomFloor}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPseudoRoomFloor sets the room number from which routing rooms are
// ignored. Zero or negative disables the filter.
func WithPseudoRoomFloor(floor int) Option {
	return func(c *config) {
		c.pseudoRoomFloor = floor
	}
}
