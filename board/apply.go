package board

// Apply plays m on the position and returns the closure that takes it back.
// Undo closures must be called in reverse order of the Apply calls that
// produced them, and only once.
func (p *Position) Apply(m Move) (undo func()) {
	unapply := p.b.Apply(m.raw)
	p.history = append(p.history, p.b.Hash())
	depth := len(p.history)
	done := false
	return func() {
		if done {
			panic("board: move " + m.String() + " undone twice")
		}
		if len(p.history) != depth {
			panic("board: undo of " + m.String() + " out of order")
		}
		done = true
		p.history = p.history[:depth-1]
		unapply()
	}
}

// Simulate plays m, runs fn against the resulting position and takes the move
// back, also when fn panics.
func (p *Position) Simulate(m Move, fn func()) {
	undo := p.Apply(m)
	defer undo()
	fn()
}
