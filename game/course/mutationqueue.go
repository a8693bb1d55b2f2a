package course

// Mutation is a deferred effect on the simulation. Mutations are collected
// while Box2D is inside World.Step (where creating or destroying bodies is
// not allowed) and applied once the step has returned.
type Mutation func()

type MutationQueue struct {
	pending []Mutation
}

func NewMutationQueue() *MutationQueue {
	return &MutationQueue{
		pending: make([]Mutation, 0),
	}
}

func (q *MutationQueue) Enqueue(mutation Mutation) {
	q.pending = append(q.pending, mutation)
}

func (q *MutationQueue) Len() int {
	return len(q.pending)
}

// Flush runs every pending mutation once, in enqueue order, and returns how
// many ran. Mutations enqueued by a running mutation wait for the next Flush.
func (q *MutationQueue) Flush() int {
	batch := q.pending
	q.pending = make([]Mutation, 0)

	for _, mutation := range batch {
		mutation()
	}

	return len(batch)
}
