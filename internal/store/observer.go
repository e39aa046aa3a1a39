package store

// Subscriber receives the full new snapshot after every successful mutation,
// synchronously with the mutation call returning.
type Subscriber[T any] func(snapshot T)

// publisher is an explicit observer list. Snapshots are delivered in
// subscription order; there is no delta encoding.
type publisher[T any] struct {
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn Subscriber[T]
}

// subscribe registers fn and returns a function that removes it again.
func (p *publisher[T]) subscribe(fn Subscriber[T]) func() {
	id := p.nextID
	p.nextID++
	p.subs = append(p.subs, subscription[T]{id: id, fn: fn})

	return func() {
		for i, sub := range p.subs {
			if sub.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// snapshot copies the subscriber list so delivery can happen outside the
// owning store's lock.
func (p *publisher[T]) snapshot() []subscription[T] {
	subs := make([]subscription[T], len(p.subs))
	copy(subs, p.subs)
	return subs
}
