package meters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadingValidate(t *testing.T) {
	ok := Reading{IndexStart: 100, IndexFin: 700}
	require.NoError(t, ok.Validate())
	require.Equal(t, 600.0, ok.VolumeSold())

	require.ErrorIs(t, Reading{IndexStart: 700, IndexFin: 700}.Validate(), ErrInvalidRange)
	require.ErrorIs(t, Reading{IndexStart: 700, IndexFin: 100}.Validate(), ErrInvalidRange)
}

func TestVolumeSoldPositive(t *testing.T) {
	cases := []struct {
		start, fin float64
	}{
		{0, 0.001},
		{100, 700},
		{99999.5, 100000},
	}
	for _, c := range cases {
		r := Reading{IndexStart: c.start, IndexFin: c.fin}
		require.NoError(t, r.Validate())
		require.Greater(t, r.VolumeSold(), 0.0)
	}
}

func TestContinuityOK(t *testing.T) {
	// первое показание по пистолету — непрерывность не проверяется
	require.True(t, ContinuityOK(nil, 100))

	prev := &Reading{IndexStart: 100, IndexFin: 700}
	require.True(t, ContinuityOK(prev, 700))
	require.False(t, ContinuityOK(prev, 705))
	require.False(t, ContinuityOK(prev, 690))
}
