package names

import (
	"testing"

	"github.com/arloliu/borsh/errs"
	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	tr := NewTracker(4)

	require.NoError(t, tr.Track("x"))
	require.NoError(t, tr.Track("y"))

	require.Equal(t, []string{"x", "y"}, tr.Names())
	require.Equal(t, 2, tr.Count())

	pos, ok := tr.Position("y")
	require.True(t, ok)
	require.Equal(t, 1, pos)

	_, ok = tr.Position("z")
	require.False(t, ok)
}

func TestTracker_Duplicate(t *testing.T) {
	tr := NewTracker(0)
	require.NoError(t, tr.Track("x"))

	err := tr.Track("x")
	require.ErrorIs(t, err, errs.ErrDuplicateField)
	require.Contains(t, err.Error(), `"x"`)
	require.Equal(t, 1, tr.Count(), "a rejected name is not recorded")
}

func TestTracker_EmptyName(t *testing.T) {
	tr := NewTracker(0)
	require.ErrorIs(t, tr.Track(""), errs.ErrInvalidSchema)
}
