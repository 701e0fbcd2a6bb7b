package collectionview

// Pool holds free elements of one reuse identifier. Elements are also
// indexed by the index path they last displayed, so a reload can hand the
// same element back to the same slot.
type Pool struct {
	identifier string
	maker      func() Element

	free []Element
	at   map[IndexPath]Element
	of   map[Element]IndexPath
}

func newPool(identifier string, maker func() Element) *Pool {
	return &Pool{
		identifier: identifier,
		maker:      maker,
		at:         make(map[IndexPath]Element),
		of:         make(map[Element]IndexPath),
	}
}

// Len returns the number of free elements.
func (p *Pool) Len() int { return len(p.free) }

// Put returns e to the pool, remembering the index path it last showed.
func (p *Pool) Put(e Element, last IndexPath) {
	if _, ok := p.of[e]; ok {
		return
	}
	if r, ok := e.(Reusable); ok {
		r.Unuse()
	}
	p.free = append(p.free, e)
	p.at[last] = e
	p.of[e] = last
}

// GetAt returns the free element that last showed ip, if any.
func (p *Pool) GetAt(ip IndexPath) Element {
	e, ok := p.at[ip]
	if !ok {
		return nil
	}
	for i, f := range p.free {
		if f == e {
			p.free = append(p.free[:i], p.free[i+1:]...)
			break
		}
	}
	p.forget(e)
	return e
}

// Get returns any free element, or nil when the pool is empty.
func (p *Pool) Get() Element {
	n := len(p.free)
	if n == 0 {
		return nil
	}
	e := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	p.forget(e)
	return e
}

func (p *Pool) forget(e Element) {
	if ip, ok := p.of[e]; ok {
		if p.at[ip] == e {
			delete(p.at, ip)
		}
		delete(p.of, e)
	}
	if r, ok := e.(Reusable); ok {
		r.Reuse()
	}
}

// Clear destroys every free element.
func (p *Pool) Clear() {
	for i, e := range p.free {
		e.Destroy()
		p.free[i] = nil
	}
	p.free = p.free[:0]
	clear(p.at)
	clear(p.of)
}
