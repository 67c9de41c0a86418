package rrbvec_test

import (
	"os"
	"os/exec"
	"testing"

	"github.com/lorange/rrbvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBasic(t *testing.T) {
	t.Parallel()

	const n = 3000
	b := rrbvec.NewBuilder[int]()
	for i := 0; i < n; i++ {
		b.Push(i)
	}
	require.Equal(t, n, b.Count())

	for i := 0; i < n; i++ {
		got, err := b.Nth(i)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}

	v := b.ToPersistent()
	assertSequence(t, v, ints(n, 0))
}

// TestTransientUpdateScenario is the boundary scenario from spec section
// 8: a 400,000-element transient build followed by 133,337 scattered
// in-place updates, verified against a plain-slice model.
func TestTransientUpdateScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large transient-update scenario in short mode")
	}
	t.Parallel()

	const size = 400000
	const updates = 133337

	model := ints(size, 0)
	b := rrbvec.NewBuilder[int]()
	for i := 0; i < size; i++ {
		b.Push(i)
	}

	for u := 0; u < updates; u++ {
		idx := (u * 9973) % size
		b.Update(idx, -idx)
		model[idx] = -idx
	}

	v := b.ToPersistent()
	for _, i := range []int{0, 1, size / 3, size / 2, size - 1} {
		got, err := v.Nth(i)
		require.NoError(t, err)
		require.Equal(t, model[i], got)
	}
}

func TestBuilderPopAndSlice(t *testing.T) {
	t.Parallel()

	const n = 1000
	b := rrbvec.NewBuilder[int]()
	for i := 0; i < n; i++ {
		b.Push(i)
	}
	for i := 0; i < 200; i++ {
		b.Pop()
	}
	require.Equal(t, n-200, b.Count())

	b.Slice(10, 300)
	require.Equal(t, 290, b.Count())
	for i := 0; i < 290; i++ {
		got, err := b.Nth(i)
		require.NoError(t, err)
		require.Equal(t, i+10, got)
	}
}

func TestBuilderSealing(t *testing.T) {
	t.Parallel()

	b := rrbvec.NewBuilder[int]()
	b.Push(1)
	b.ToPersistent()
	assert.PanicsWithValue(t, rrbvec.TransientMisuse{Reason: "use of transient after ToPersistent"}, func() {
		b.Push(2)
	})
}

// TestTransientMisuseIsFatal checks spec section 7's requirement that use
// of a sealed transient be detectable via subprocess exit code: an
// uncaught panic terminates the process, so the failure has to be driven
// from a child process rather than caught in-process.
func TestTransientMisuseIsFatal(t *testing.T) {
	if os.Getenv("RRBVEC_TRANSIENT_MISUSE_CHILD") == "1" {
		b := rrbvec.NewBuilder[int]()
		b.Push(1)
		b.ToPersistent()
		b.Push(2) // panics: TransientMisuse
		return
	}

	t.Parallel()
	cmd := exec.Command(os.Args[0], "-test.run=TestTransientMisuseIsFatal")
	cmd.Env = append(os.Environ(), "RRBVEC_TRANSIENT_MISUSE_CHILD=1")
	err := cmd.Run()

	require.Error(t, err, "child process should have exited non-zero")
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, "expected an ExitError, got %T: %v", err, err)
	assert.False(t, exitErr.Success())
}
