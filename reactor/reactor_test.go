//go:build unix

package reactor

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countWaker counts deliveries and records their order across wakers
// sharing the same log.
type countWaker struct {
	n   *int
	log *[]string
	tag string
}

func (w countWaker) Wake() {
	*w.n++
	if w.log != nil {
		*w.log = append(*w.log, w.tag)
	}
}

func pipePair(t *testing.T) (r, w int) {
	t.Helper()
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestTimerOnlyWait(t *testing.T) {
	r := New[countWaker]()
	fired := 0

	deadline := time.Now().Add(15 * time.Millisecond)
	require.NoError(t, r.RegisterTimer(deadline, countWaker{n: &fired}))

	start := time.Now()
	require.NoError(t, r.WaitAny())
	elapsed := time.Since(start)

	assert.Equal(t, 1, fired, "exactly one wake for one timer")
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond, "woke too early")
	assert.Less(t, elapsed, 200*time.Millisecond, "woke far too late")
	assert.True(t, r.IsEmpty(), "fired timer must not linger")
}

func TestElapsedTimerFiresImmediately(t *testing.T) {
	r := New[countWaker]()
	fired := 0
	require.NoError(t, r.RegisterTimer(time.Now().Add(-time.Second), countWaker{n: &fired}))

	start := time.Now()
	require.NoError(t, r.WaitAny())

	assert.Equal(t, 1, fired)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "past deadline must not block")
}

func TestTimersWakeInDeadlineOrder(t *testing.T) {
	r := New[countWaker]()
	fired := 0
	var order []string

	now := time.Now()
	// Register out of order; all already due.
	require.NoError(t, r.RegisterTimer(now.Add(-1*time.Millisecond), countWaker{n: &fired, log: &order, tag: "b"}))
	require.NoError(t, r.RegisterTimer(now.Add(-3*time.Millisecond), countWaker{n: &fired, log: &order, tag: "a"}))
	require.NoError(t, r.RegisterTimer(now.Add(-2*time.Millisecond), countWaker{n: &fired, log: &order, tag: "ab"}))

	require.NoError(t, r.WaitAny())
	assert.Equal(t, []string{"a", "ab", "b"}, order)
}

func TestIOWaitReadyDescriptor(t *testing.T) {
	r := New[countWaker]()
	rd, wr := pipePair(t)

	fired := 0
	require.NoError(t, r.RegisterIO(Readable(rd), countWaker{n: &fired}))
	require.Equal(t, 1, r.IOPending())

	_, err := unix.Write(wr, []byte{1})
	require.NoError(t, err)

	require.NoError(t, r.WaitAny())
	assert.Equal(t, 1, fired, "exactly one wake for the ready descriptor")
	assert.Equal(t, 0, r.IOPending(), "ready entry must be removed")
	assert.True(t, r.IsEmpty())
}

func TestIOWaitKeepsUnreadyEntriesAligned(t *testing.T) {
	r := New[countWaker]()
	rdA, wrA := pipePair(t)
	rdB, wrB := pipePair(t)

	firedA, firedB := 0, 0
	require.NoError(t, r.RegisterIO(Readable(rdA), countWaker{n: &firedA}))
	require.NoError(t, r.RegisterIO(Readable(rdB), countWaker{n: &firedB}))

	_, err := unix.Write(wrA, []byte{1})
	require.NoError(t, err)

	require.NoError(t, r.WaitAny())
	assert.Equal(t, 1, firedA)
	assert.Equal(t, 0, firedB, "unready descriptor must not be woken")
	assert.Equal(t, 1, r.IOPending(), "unready entry must survive")

	// After the swap-remove the surviving entry must still be wired to
	// B's waker, not A's.
	_, err = unix.Write(wrB, []byte{1})
	require.NoError(t, err)

	require.NoError(t, r.WaitAny())
	assert.Equal(t, 1, firedA, "A must not fire again")
	assert.Equal(t, 1, firedB)
	assert.Equal(t, 0, r.IOPending())
}

func TestIOBeatsLaterTimer(t *testing.T) {
	r := New[countWaker]()
	rd, wr := pipePair(t)

	ioFired, timerFired := 0, 0
	require.NoError(t, r.RegisterIO(Readable(rd), countWaker{n: &ioFired}))
	require.NoError(t, r.RegisterTimer(time.Now().Add(5*time.Second), countWaker{n: &timerFired}))

	_, err := unix.Write(wr, []byte{1})
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, r.WaitAny())

	assert.Equal(t, 1, ioFired)
	assert.Equal(t, 0, timerFired, "pending timer must stay queued")
	assert.Equal(t, 1, r.TimersPending())
	assert.Less(t, time.Since(start), time.Second, "descriptor readiness must cut the wait short")
}

func TestClearDropsEverythingSilently(t *testing.T) {
	r := New[countWaker]()
	rd, _ := pipePair(t)

	fired := 0
	require.NoError(t, r.RegisterIO(Readable(rd), countWaker{n: &fired}))
	require.NoError(t, r.RegisterTimer(time.Now().Add(time.Hour), countWaker{n: &fired}))
	require.Equal(t, 2, r.Size())

	r.Clear()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, fired, "Clear must not wake anyone")
}

func TestRegisterLimit(t *testing.T) {
	r := New[countWaker]()
	r.SetLimit(1)
	rd, _ := pipePair(t)

	require.NoError(t, r.RegisterIO(Readable(rd), countWaker{n: new(int)}))
	assert.Error(t, r.RegisterTimer(time.Now().Add(time.Hour), countWaker{n: new(int)}))
	assert.Error(t, r.RegisterIO(Readable(rd), countWaker{n: new(int)}))
}

func TestRegisterInvalidFD(t *testing.T) {
	r := New[countWaker]()
	assert.Error(t, r.RegisterIO(PollFd{FD: -1, Events: In}, countWaker{n: new(int)}))
}
