package snake

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeterm/internal/rng"
)

func started(t *testing.T, ints ...int) *Engine {
	t.Helper()
	e := New(&rng.Sequence{Ints: ints})
	e.Start()
	require.Equal(t, Playing, e.Status())
	return e
}

func TestNewIsIdle(t *testing.T) {
	e := New(rng.New(1))
	assert.Equal(t, Idle, e.Status())
	assert.False(t, e.Tick())
	assert.False(t, e.Steer(Up))
}

func TestStart(t *testing.T) {
	e := started(t, 15, 3)
	snap := e.Snapshot()
	assert.Equal(t, startBody, snap.Snake)
	assert.Equal(t, Point{15, 3}, snap.Food)
	assert.Equal(t, Right, snap.Direction)
	assert.Zero(t, snap.Score)
}

func TestStartResamplesFoodOnSnake(t *testing.T) {
	e := started(t, 9, 10, 2, 2)
	assert.Equal(t, Point{2, 2}, e.Snapshot().Food)
}

func TestTickMovesRight(t *testing.T) {
	e := started(t, 0, 0)
	require.True(t, e.Tick())
	assert.Equal(t, []Point{{11, 10}, {10, 10}, {9, 10}}, e.Snapshot().Snake)
}

func TestReversalRejected(t *testing.T) {
	e := started(t, 0, 0)
	assert.False(t, e.Steer(Left))
	e.Tick()
	assert.Equal(t, Right, e.Snapshot().Direction)

	assert.True(t, e.Steer(Up))
	e.Tick()
	assert.Equal(t, Up, e.Snapshot().Direction)
	assert.Equal(t, Point{11, 9}, e.Snapshot().Snake[0])
}

func TestDoubleTurnWithinTickCannotReverse(t *testing.T) {
	e := started(t, 0, 0)
	// UP then LEFT before the tick: LEFT is checked against the committed
	// RIGHT, not the queued UP.
	assert.True(t, e.Steer(Up))
	assert.False(t, e.Steer(Left))
	e.Tick()
	assert.Equal(t, Up, e.Snapshot().Direction)
}

func TestEatGrowsAndScores(t *testing.T) {
	e := started(t, 11, 10, 0, 0)
	before := e.Snapshot()
	require.True(t, e.Tick())
	after := e.Snapshot()

	assert.Equal(t, before.Score+1, after.Score)
	assert.Len(t, after.Snake, len(before.Snake)+1)
	assert.Equal(t, Point{0, 0}, after.Food)
	assert.Equal(t, Point{8, 10}, after.Snake[len(after.Snake)-1])
}

func TestFoodNeverOnSnake(t *testing.T) {
	// second food draw lands on the new head, then the body, then free
	e := started(t, 11, 10, 11, 10, 10, 10, 5, 5)
	e.Tick()
	assert.Equal(t, Point{5, 5}, e.Snapshot().Food)
}

func TestWraparound(t *testing.T) {
	e := started(t, 0, 0)
	e.snake = []Point{{19, 10}, {18, 10}, {17, 10}}
	e.Tick()
	assert.Equal(t, Point{0, 10}, e.Snapshot().Snake[0])

	e.snake = []Point{{5, 0}, {5, 1}, {5, 2}}
	e.committed, e.pending = Up, Up
	e.Tick()
	assert.Equal(t, Point{5, 19}, e.Snapshot().Snake[0])
}

func TestSelfCollisionEndsGame(t *testing.T) {
	e := started(t, 0, 0)
	e.score, e.highScore = 3, 1
	e.snake = []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}
	before := e.Snapshot()

	assert.False(t, e.Tick())
	after := e.Snapshot()
	assert.Equal(t, GameOver, after.Status)
	if diff := cmp.Diff(before.Snake, after.Snake); diff != "" {
		t.Errorf("snake changed on collision (-before +after)\n%s", diff)
	}
	assert.Equal(t, 3, after.HighScore)
	assert.False(t, e.Tick())
}

func TestHighScoreOnlyRises(t *testing.T) {
	e := started(t, 0, 0)
	e.score, e.highScore = 2, 7
	e.snake = []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}
	e.Tick()
	assert.Equal(t, 7, e.HighScore())
}

func TestRestartKeepsHighScore(t *testing.T) {
	e := started(t, 0, 0)
	e.score = 4
	e.snake = []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}, {6, 5}, {6, 4}}
	e.Tick()
	require.Equal(t, GameOver, e.Status())

	e.Start()
	assert.Equal(t, Playing, e.Status())
	assert.Zero(t, e.Score())
	assert.Equal(t, 4, e.HighScore())
	assert.Equal(t, startBody, e.Snapshot().Snake)
}

func TestReset(t *testing.T) {
	e := started(t, 0, 0)
	e.Reset()
	assert.Equal(t, Idle, e.Status())
	assert.Empty(t, e.Snapshot().Snake)
	assert.False(t, e.Tick())
}

func TestFullBoardIsGameOver(t *testing.T) {
	e := started(t, 0, 0)
	e.width, e.height = 2, 2
	e.snake = []Point{{0, 0}, {0, 1}, {1, 1}}
	e.food = Point{1, 0}
	e.committed, e.pending = Left, Right
	require.True(t, e.Tick())
	assert.Equal(t, GameOver, e.Status())
	assert.Equal(t, 1, e.HighScore())
}

func TestSecretUnlocked(t *testing.T) {
	assert.False(t, Snapshot{Score: SecretScore}.SecretUnlocked())
	assert.True(t, Snapshot{Score: SecretScore + 1}.SecretUnlocked())
}
