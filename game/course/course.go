package course

import (
	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// StageBuilder lays out the static content of a course. It is run on every
// reset, against a fresh world.
type StageBuilder func(course *Course, sf *StageFactory)

// Course owns a physics world, the robots living in it and the course
// features built by its stage. It is not safe for concurrent use.
type Course struct {
	config Config
	stage  StageBuilder

	world      *box2d.B2World
	collisions *collisionListener
	mutations  *MutationQueue

	t    float64
	tick uint64

	robots      map[string]*Robot
	robotOrder  []string
	latestRobot *Robot

	checkpoints []*Checkpoint
	floors      [][]vector.Vector2
	labels      *labelIndex
	camera      camera
}

func NewCourse(config Config, stage StageBuilder) (*Course, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if stage == nil {
		stage = PopulateCourse
	}

	course := &Course{
		config: config,
		stage:  stage,
	}

	course.Reset()

	return course, nil
}

// Reset discards the world and every robot, then rebuilds the stage. Robot
// ids issued before the reset are no longer valid.
func (course *Course) Reset() {
	world := box2d.MakeB2World(course.config.Gravity.ToB2Vec2())
	course.world = &world

	course.collisions = newCollisionListener()
	course.world.SetContactListener(course.collisions)
	course.mutations = NewMutationQueue()

	course.t = 0
	course.tick = 0

	course.robots = make(map[string]*Robot)
	course.robotOrder = make([]string, 0)
	course.latestRobot = nil

	course.checkpoints = make([]*Checkpoint, 0)
	course.floors = make([][]vector.Vector2, 0)
	course.labels = newLabelIndex()
	course.camera = newCamera()

	course.stage(course, newStageFactory(course))

	utils.DebugWithContext("course", "Course reset", utils.Context{
		"checkpoints": len(course.checkpoints),
		"floors":      len(course.floors),
		"labels":      course.labels.Len(),
	})
}

// SpawnRobot creates a robot whose body is centered on position. Parameters
// are the course defaults with overrides applied on top.
func (course *Course) SpawnRobot(position vector.Vector2, overrides RobotParamsOverrides) (string, error) {
	if !position.IsFinite() {
		return "", errors.Wrapf(ErrInvalidParameter, "spawn position %s is not finite", position)
	}

	params := DefaultRobotParams().Merge(course.config.Robot).Merge(overrides)
	if err := params.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewV4().String()
	robot := course.newRobot(id, position, params)

	course.robots[id] = robot
	course.robotOrder = append(course.robotOrder, id)
	course.latestRobot = robot

	utils.DebugWithContext("course", "Robot spawned", utils.Context{
		"robot": id,
		"p":     position,
	})

	return id, nil
}

func (course *Course) Robot(id string) (*Robot, error) {
	robot, ok := course.robots[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRobot, "no robot with id %q", id)
	}

	return robot, nil
}

// Robots returns the robots in spawn order.
func (course *Course) Robots() []*Robot {
	res := make([]*Robot, 0, len(course.robotOrder))
	for _, id := range course.robotOrder {
		res = append(res, course.robots[id])
	}
	return res
}

func (course *Course) LatestRobot() *Robot {
	return course.latestRobot
}

// Time is the simulated clock, in seconds since the last reset.
func (course *Course) Time() float64 {
	return course.t
}

func (course *Course) Tick() uint64 {
	return course.tick
}

func (course *Course) Config() Config {
	return course.config
}

// Floors returns the floor polylines built by the stage.
func (course *Course) Floors() [][]vector.Vector2 {
	return course.floors
}

func (course *Course) Checkpoints() []*Checkpoint {
	return course.checkpoints
}

// Labels returns every text label, in placement order.
func (course *Course) Labels() []*Label {
	return course.labels.labels
}

func (course *Course) PendingMutations() int {
	return course.mutations.Len()
}
