package course

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/common/utils/vector"
)

// PopulateCourse builds the standard course: an intro area, three fitness
// tests (sprint, long jump, high jump) and an obstacle course.
func PopulateCourse(course *Course, sf *StageFactory) {
	sf.Move(-10, 0)
	sf.BeginFloor()

	sf.PutText(3, 5, fmt.Sprintf(`Inverted Pendulum Simulator
version %s

listening on port %d

Rules:
- anything but the wheel touching the floor is a fall
- follow the instructions along the course`, course.config.Version, course.config.Port))

	sf.AddFloor(20, 0)
	sf.PutText(1, 5, "Fitness tests")
	sf.AddFloor(10, 0)

	buildSprint(course, sf)
	sf.AddFloor(10, 0)
	buildLongJump(course, sf)
	sf.AddFloor(10, 0)
	sf.AddFloor(10, 0)
	buildHighJump(course, sf)
	buildObstacleCourse(course, sf)

	sf.AddFloor(5, 0)
	sf.AddFloor(4, 0)
	sf.PutText(0, 3, "Under construction beyond this point")
	sf.AddFloor(10, 0)
	sf.EndFloor()
}

// record logs an achievement and shows it on the course.
func record(robot *Robot, sf *StageFactory, at vector.Vector2, entry string, display string) {
	robot.logAchievement(entry)
	sf.PutTextAt(at, display)

	utils.DebugWithContext("course", "Achievement", utils.Context{
		"robot": robot.ID,
		"entry": entry,
	})
}

func buildSprint(course *Course, sf *StageFactory) {
	sf.PutText(0, 5, fmt.Sprintf("Test 1: 10m sprint\ntimed from x = %gm\nto x = %gm", sf.X+5, sf.X+15))

	var startTime float64
	sf.AddFloor(5, 0)

	sp := sf.Pos()
	sf.MakeGate(func(robot *Robot) {
		startTime = course.Time()
		sf.PutTextAt(sp.Add(vector.MakeVector2(0.2, 2)), "Go!")
	})

	sf.AddFloor(10, 0)

	gp := sf.Pos()
	sf.MakeGate(func(robot *Robot) {
		elapsed := course.Time() - startTime
		record(robot, sf,
			gp.Add(vector.MakeVector2(0.2, 2)),
			fmt.Sprintf("10m sprint: %.3fs", elapsed),
			fmt.Sprintf("Record %.3fs", elapsed),
		)
	})
}

func buildLongJump(course *Course, sf *StageFactory) {
	const (
		pitLength = 20
		pitDepth  = 0.3
	)

	sf.PutText(0, 5, fmt.Sprintf("Test 2: long jump\ndistance measured from x = %gm", sf.X+5))
	sf.AddFloor(5, 0)

	sp := sf.Pos()
	sf.MakeZone(
		pitLength/2, pitDepth/2,
		vector.MakeVector2(sf.X+pitLength/2, sf.Y-pitDepth/2+0.01),
		func(robot *Robot) {
			distance := robot.Wheel.GetPosition().X - sp.X
			record(robot, sf,
				vector.MakeVector2(sp.X+distance, sp.Y-0.7),
				fmt.Sprintf("long jump: %.3fm", distance),
				fmt.Sprintf("Record %.3fm", distance),
			)
		},
	)

	sf.AddFloor(pitLength, 0)
}

func buildHighJump(course *Course, sf *StageFactory) {
	sf.PutText(0, 5, fmt.Sprintf("Test 3: high jump\nwheel height measured at x = %gm", sf.X+5))
	sf.AddFloor(5, 0)

	sp := sf.Pos()
	sf.MakeGate(func(robot *Robot) {
		height := robot.Wheel.GetPosition().Y - sp.Y - robot.Params.Wheel.Radius
		record(robot, sf,
			vector.MakeVector2(sp.X+0.2, sp.Y+height+0.2),
			fmt.Sprintf("high jump: %.3fm", height),
			fmt.Sprintf("Record %.3fm", height),
		)
	})
}

func buildObstacleCourse(course *Course, sf *StageFactory) {
	var startTime float64

	sf.AddFloor(10, 0)
	sf.PutText(-1, 6, "From here on,\nenjoy the obstacle course")
	sf.AddFloor(5, 0)

	sp := sf.Pos()
	sf.MakeGate(func(robot *Robot) {
		startTime = course.Time()
		sf.PutTextAt(sp.Add(vector.MakeVector2(0.2, 2)), "Go!")
	})

	sf.AddFloor(11, 0)

	// bumpy road
	for i := 0; i < 10; i++ {
		sf.AddFloor(0.3, -0.05)
		sf.AddFloor(0.3, 0.05)
	}

	// hill
	sf.AddFloor(2, 0)
	sf.AddFloor(2, 1)
	sf.AddFloor(2, -1)

	// ramp and drop
	sf.AddFloor(5, 0)
	sf.AddFloor(2, 0.2)
	sf.AddFloor(2, 0.4)
	sf.AddFloor(2, 0.6)
	sf.AddFloor(0, -1.2)
	sf.AddFloor(1, 0)

	// stairs down
	sf.AddFloor(5, 0)
	for i := 0; i < 10; i++ {
		sf.AddFloor(0.3, 0)
		sf.AddFloor(0, -0.1)
	}

	sf.AddFloor(10, 0)
	buildBlockPile(course, sf)

	buildCeiling(course, sf)
	buildConveyor(course, sf)
	buildTimedGate(course, sf)
	buildElevator(course, sf)

	fp := sf.Pos()
	sf.MakeGate(func(robot *Robot) {
		elapsed := course.Time() - startTime
		robot.logAchievement(fmt.Sprintf("obstacle course: %.3fs", elapsed))

		var msg strings.Builder
		fmt.Fprintf(&msg, "🏁finished in %.2fs\n", course.Time())
		if len(robot.Achievements.Falls) > 0 {
			fall := robot.Achievements.Falls[0].Position
			fmt.Fprintf(&msg, "  (fell at x = %.2f, y = %.2f)\n", fall.X, fall.Y)
		}
		msg.WriteString("\n")
		for _, entry := range robot.Achievements.Log {
			msg.WriteString("  " + entry + "\n")
		}

		sf.PutTextAt(fp.Add(vector.MakeVector2(0.2, 5)), msg.String())

		utils.DebugWithContext("course", "Obstacle course finished", utils.Context{
			"robot": robot.ID,
			"time":  elapsed,
			"falls": len(robot.Achievements.Falls),
		})
	})
}

// buildBlockPile stacks loose blocks on the floor; a checkpoint past the pile
// removes them once a robot made it through.
func buildBlockPile(course *Course, sf *StageFactory) {
	const (
		rows    = 10
		columns = 5
		half    = 0.1
	)

	blocks := make([]*box2d.B2Body, 0, rows*columns)
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			bodydef := box2d.MakeB2BodyDef()
			bodydef.Type = box2d.B2BodyType.B2_dynamicBody
			bodydef.Position.Set(sf.X-1-float64(j)*2*half, sf.Y+half+2*half*float64(i))

			block := course.world.CreateBody(&bodydef)

			shape := box2d.MakeB2PolygonShape()
			shape.SetAsBox(half, half)

			fixturedef := box2d.MakeB2FixtureDef()
			fixturedef.Shape = &shape
			fixturedef.Friction = 0.1
			fixturedef.Density = 0.1
			block.CreateFixtureFromDef(&fixturedef)

			blocks = append(blocks, block)
		}
	}

	sf.AddFloor(5, 0)

	sf.MakeGate(func(robot *Robot) {
		for len(blocks) > 0 {
			course.world.DestroyBody(blocks[len(blocks)-1])
			blocks = blocks[:len(blocks)-1]
		}
	})
}

// buildCeiling lays a wavy floor under a low ceiling.
func buildCeiling(course *Course, sf *StageFactory) {
	const (
		width     = 10.0
		clearance = 1.2
		thickness = 10.0
		dx        = 0.1
	)

	sf.AddFloor(5, 0)

	bodydef := box2d.MakeB2BodyDef()
	bodydef.Position.Set(sf.X+width/2, sf.Y+clearance+thickness/2)
	ceiling := course.world.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(width/2, thickness/2)
	ceiling.CreateFixture(&shape, 0.0)

	y := 0.0
	for x := dx; x < width; x += dx {
		ny := 0.1 * math.Sin(x*math.Pi*2)
		sf.AddFloor(dx, ny-y)
		y = ny
	}

	sf.AddFloor(5, 0)
}

// buildConveyor cuts the floor after a drop and puts a backwards running belt
// in the gap.
func buildConveyor(course *Course, sf *StageFactory) {
	const (
		drop      = 0.5
		width     = 9.0
		thickness = 0.2
		speed     = -10.0
	)

	sf.AddFloor(5, 0)
	sf.AddFloor(0, -drop)
	sf.EndFloor()

	_, fixture := course.createFloorBlock(
		box2d.B2BodyType.B2_staticBody,
		vector.MakeVector2(sf.X+width/2, sf.Y-thickness/2),
		width/2, thickness/2,
	)
	course.newConveyor(fixture, speed)

	sf.Move(width, 0)
	sf.BeginFloor()
	sf.AddFloor(5, 0)
}

// buildTimedGate places a block that starts sinking once a robot crosses the
// line 5m before it.
func buildTimedGate(course *Course, sf *StageFactory) {
	const (
		width  = 10.0
		height = 1.3
		speed  = -0.1
	)

	sf.AddFloor(10, 0)

	platform, _ := course.createFloorBlock(
		box2d.B2BodyType.B2_kinematicBody,
		vector.MakeVector2(sf.X+width/2, sf.Y+height/2),
		width/2, height/2,
	)

	sf.MakeGateAt(sf.X-5, func(robot *Robot) {
		platform.SetLinearVelocity(box2d.MakeB2Vec2(0, speed))
	})

	sf.AddFloor(5, 0)
}

// buildElevator digs a shaft with a platform rising as fast as whatever
// rolls on it.
func buildElevator(course *Course, sf *StageFactory) {
	const (
		width     = 4.0
		height    = 18.0
		thickness = 0.1
		ratio     = 1.0
	)

	sf.AddFloor(5, 0)

	platform, fixture := course.createFloorBlock(
		box2d.B2BodyType.B2_kinematicBody,
		vector.MakeVector2(sf.X+width/2, sf.Y-thickness/2),
		width/2, thickness/2,
	)
	course.newElevator(platform, fixture, ratio)

	sf.AddFloor(0, -thickness)
	sf.AddFloor(width, 0)
	sf.AddFloor(0, height+thickness)

	sf.AddFloor(5, 0)
}
