package course

import (
	"github.com/ByteArena/box2d"
)

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Collision Handling
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

type contactHandler func(contact box2d.B2ContactInterface)
type preSolveHandler func(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold)

// Box2D accepts a single listener per world; robots, checkpoints and
// mechanisms subscribe here instead. Handlers run synchronously inside
// World.Step and must only touch their own state or enqueue mutations.
type collisionListener struct { /* implements box2d.B2World.B2ContactListenerInterface */
	beginHandlers    []contactHandler
	endHandlers      []contactHandler
	preSolveHandlers []preSolveHandler
}

func newCollisionListener() *collisionListener {
	return &collisionListener{}
}

func (listener *collisionListener) onBeginContact(handler contactHandler) {
	listener.beginHandlers = append(listener.beginHandlers, handler)
}

func (listener *collisionListener) onEndContact(handler contactHandler) {
	listener.endHandlers = append(listener.endHandlers, handler)
}

func (listener *collisionListener) onPreSolve(handler preSolveHandler) {
	listener.preSolveHandlers = append(listener.preSolveHandlers, handler)
}

/// Called when two fixtures begin to touch.
func (listener *collisionListener) BeginContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
	for _, handler := range listener.beginHandlers {
		handler(contact)
	}
}

/// Called when two fixtures cease to touch.
func (listener *collisionListener) EndContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
	for _, handler := range listener.endHandlers {
		handler(contact)
	}
}

/// This is called after a contact is updated, before it goes to the solver.
/// Note: this is called only for awake bodies, and not for sensors.
func (listener *collisionListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) { // contact has to be backed by a pointer
	for _, handler := range listener.preSolveHandlers {
		handler(contact, oldManifold)
	}
}

func (listener *collisionListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) { // contact has to be backed by a pointer
}

// otherFixture returns the fixture facing mine in a contact, or nil when mine
// is not part of it.
func otherFixture(mine, fixtureA, fixtureB *box2d.B2Fixture) *box2d.B2Fixture {
	switch mine {
	case fixtureA:
		return fixtureB
	case fixtureB:
		return fixtureA
	}
	return nil
}
