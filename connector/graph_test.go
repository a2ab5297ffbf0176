package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

var board = vmath.Rect{Max: vmath.V2(400, 400)}

func spec(side core.Side, shape core.Shape, target core.Coord, off vmath.Vec2) partition.ConnectorSpec {
	return partition.ConnectorSpec{Side: side, Shape: shape, Target: target, Offset: off}
}

// pair builds two pieces with facing right/left connectors at the given centres
func pair(t *testing.T, a, b vmath.Vec2) (*Graph, ID, ID) {
	t.Helper()
	g := NewGraph(board, 10)
	r := g.Add(0, spec(core.SideRight, core.Tab, core.Coord{Col: 1}, vmath.V2(50, 0)), a)
	l := g.Add(1, spec(core.SideLeft, core.Blank, core.Coord{}, vmath.V2(-50, 0)), b)
	return g, r, l
}

// TestOverlapsFindsFacingConnector verifies aligned complementary sensors match
func TestOverlapsFindsFacingConnector(t *testing.T) {
	g, r, l := pair(t, vmath.V2(100, 100), vmath.V2(205, 103))

	assert.Equal(t, []ID{l}, g.Overlaps(r))
	assert.Equal(t, []ID{r}, g.Overlaps(l))
}

func TestOverlapsRespectsDistance(t *testing.T) {
	g, r, _ := pair(t, vmath.V2(100, 100), vmath.V2(221, 100))
	assert.Empty(t, g.Overlaps(r), "sensors 21 apart with half 10 must not overlap")

	g.Place(1, vmath.V2(219, 100))
	assert.Len(t, g.Overlaps(r), 1)
}

// TestJoinSymmetric verifies joins and clears always update both ends
func TestJoinSymmetric(t *testing.T) {
	g, r, l := pair(t, vmath.V2(100, 100), vmath.V2(200, 100))

	require.True(t, g.Join(r, l))
	assert.Equal(t, l, g.Get(r).JoinedTo())
	assert.Equal(t, r, g.Get(l).JoinedTo())
	require.NoError(t, g.Validate())

	// Already joined: skipped
	assert.False(t, g.Join(r, l))
	assert.Empty(t, g.Overlaps(r))

	assert.Equal(t, l, g.Clear(r))
	assert.Equal(t, None, g.Get(r).JoinedTo())
	assert.Equal(t, None, g.Get(l).JoinedTo())
	assert.Equal(t, None, g.Clear(r))
	require.NoError(t, g.Validate())
}

// TestEligibleRules verifies same sign, same shape, other axis and same piece are rejected
func TestEligibleRules(t *testing.T) {
	g := NewGraph(board, 10)
	at := vmath.V2(100, 100)
	right := g.Add(0, spec(core.SideRight, core.Tab, core.Coord{}, vmath.Vec2{}), at)
	rightTwin := g.Add(1, spec(core.SideRight, core.Blank, core.Coord{}, vmath.Vec2{}), at)
	leftSame := g.Add(2, spec(core.SideLeft, core.Tab, core.Coord{}, vmath.Vec2{}), at)
	down := g.Add(3, spec(core.SideDown, core.Blank, core.Coord{}, vmath.Vec2{}), at)
	own := g.Add(0, spec(core.SideLeft, core.Blank, core.Coord{}, vmath.Vec2{}), at)
	good := g.Add(4, spec(core.SideLeft, core.Blank, core.Coord{}, vmath.Vec2{}), at)

	assert.False(t, g.Eligible(right, rightTwin), "same side sign")
	assert.False(t, g.Eligible(right, leftSame), "same shape")
	assert.False(t, g.Eligible(right, down), "different magnitude")
	assert.False(t, g.Eligible(right, own), "same piece")
	assert.True(t, g.Eligible(right, good))

	assert.Equal(t, []ID{good}, g.Overlaps(right))
	assert.False(t, g.Join(right, leftSame))
	assert.Equal(t, None, g.Get(right).JoinedTo())
}

// TestPlaceUpdatesBroadPhase verifies moved connectors are found at their new cell
func TestPlaceUpdatesBroadPhase(t *testing.T) {
	g, r, l := pair(t, vmath.V2(50, 50), vmath.V2(350, 350))
	assert.Empty(t, g.Overlaps(r))

	g.Place(1, vmath.V2(150, 50))
	assert.Equal(t, vmath.V2(100, 50), g.Get(l).Center())
	assert.Equal(t, []ID{l}, g.Overlaps(r))

	// Far outside the board still resolves through the clamped border cells
	g.Place(0, vmath.V2(-500, -500))
	g.Place(1, vmath.V2(-395, -500))
	assert.Equal(t, []ID{l}, g.Overlaps(r))
}

func TestOverlapsNearestFirst(t *testing.T) {
	g := NewGraph(board, 10)
	src := g.Add(0, spec(core.SideRight, core.Tab, core.Coord{}, vmath.Vec2{}), vmath.V2(100, 100))
	far := g.Add(1, spec(core.SideLeft, core.Blank, core.Coord{}, vmath.Vec2{}), vmath.V2(112, 100))
	near := g.Add(2, spec(core.SideLeft, core.Blank, core.Coord{}, vmath.Vec2{}), vmath.V2(103, 100))

	assert.Equal(t, []ID{near, far}, g.Overlaps(src))
}
