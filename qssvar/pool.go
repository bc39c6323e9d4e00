package qssvar

import "sort"

// Pool is the arena that owns every Variable's Base by ID. Variables never
// move once added; IDs are stable indices into pool.vars.
type Pool struct {
	vars []*Base
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add registers b, assigns its ID, and returns that ID.
func (p *Pool) Add(b *Base) ID {
	b.ID = ID(len(p.vars))
	p.vars = append(p.vars, b)
	return b.ID
}

// Get returns the Base for id.
func (p *Pool) Get(id ID) *Base { return p.vars[id] }

// Len returns the number of variables in the pool.
func (p *Pool) Len() int { return len(p.vars) }

// Observe wires a dependency edge: the variable named by-self's trajectory
// depends on the value of the variable named by-other. If self == other,
// it sets self's SelfObserver flag instead of creating a self-edge (§4.2:
// "observe(v): if v == self, set the self-observer flag; else append v to
// observees and append self to v.observers").
func (p *Pool) Observe(self, other ID) {
	if self == other {
		p.vars[self].SelfObserver = true
		return
	}
	p.vars[self].Observees = append(p.vars[self].Observees, other)
	p.vars[other].Observers = append(p.vars[other].Observers, self)
}

// InitObservers uniquifies id's observer list, sorts it by variant rank
// (state variables, then real non-state, then zero-crossings, then
// everything else) and ascending order within a group, and records the
// resulting per-group index ranges and the UniformOrder flag on id's Base.
func (p *Pool) InitObservers(id ID) {
	b := p.vars[id]
	b.Observers = uniquify(b.Observers)

	sort.Slice(b.Observers, func(i, j int) bool {
		oi, oj := p.vars[b.Observers[i]], p.vars[b.Observers[j]]
		ri, rj := oi.Variant.rank(), oj.Variant.rank()
		if ri != rj {
			return ri < rj
		}
		return oi.Order < oj.Order
	})

	b.RangeQSS = p.groupRange(b.Observers, 0)
	b.RangeReal = p.groupRange(b.Observers, 1)
	b.RangeZC = p.groupRange(b.Observers, 2)
	b.RangeOther = p.groupRange(b.Observers, 3)

	b.UniformOrder = true
	if len(b.Observers) > 1 {
		first := p.vars[b.Observers[0]].Order
		for _, oid := range b.Observers[1:] {
			if p.vars[oid].Order != first {
				b.UniformOrder = false
				break
			}
		}
	}
}

// groupRange returns the contiguous [start, end) span of observers whose
// variant rank equals want, assuming observers is already sorted by rank.
func (p *Pool) groupRange(observers []ID, want int) [2]int {
	start := -1
	end := 0
	for i, oid := range observers {
		r := p.vars[oid].Variant.rank()
		if r == want {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	if start == -1 {
		return [2]int{0, 0}
	}
	return [2]int{start, end}
}

// InitObservees uniquifies id's observee list and discards discrete
// observees, which never change between their own events and so cannot
// usefully seed a directional derivative (§4.2).
func (p *Pool) InitObservees(id ID) {
	b := p.vars[id]
	b.Observees = uniquify(b.Observees)

	kept := b.Observees[:0]
	for _, oid := range b.Observees {
		if p.vars[oid].Variant == VariantDiscrete {
			continue
		}
		kept = append(kept, oid)
	}
	b.Observees = kept
}

func uniquify(ids []ID) []ID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[ID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
