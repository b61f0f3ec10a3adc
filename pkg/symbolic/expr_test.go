package symbolic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprArithmetic(t *testing.T) {
	e := Mu().Scale(2).Add(Const(3))
	assert.Equal(t, 1, e.Degree())
	assert.Equal(t, 3.0, e.Coeff(0))
	assert.Equal(t, 2.0, e.Coeff(1))
	assert.InDelta(t, 7.0, e.Eval(2), 1e-12)

	sq := e.Mul(Mu())
	assert.Equal(t, 2, sq.Degree())
	assert.InDelta(t, 14.0, sq.Eval(2), 1e-12)

	assert.True(t, e.Sub(e).IsZero())
	assert.Equal(t, 0, e.Sub(e).Degree())
	assert.True(t, Const(4).IsConst())
	assert.False(t, Mu().IsConst())
}

func TestExprScaleZeroCollapses(t *testing.T) {
	assert.True(t, Mu().Scale(0).IsZero())
	assert.True(t, Poly(0, 0, 0).IsZero())
	assert.True(t, Expr{}.Mul(Mu()).IsZero())
}

func TestExprString(t *testing.T) {
	cases := map[string]Expr{
		"0":              {},
		"1":              Const(1),
		"-mu":            Mu().Neg(),
		"2*mu + 1":       Poly(1, 2),
		"-0.5*mu^2 - mu": Poly(0, -1, -0.5),
	}
	for want, e := range cases {
		assert.Equal(t, want, e.String())
	}
}

func TestExprJSONRoundTrip(t *testing.T) {
	e := Poly(1.5, -2, 0.25)
	data, err := json.Marshal(e)
	require.NoError(t, err)
	var out Expr
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, e.Equal(out, 0))

	var scalar Expr
	require.NoError(t, json.Unmarshal([]byte("-3"), &scalar))
	assert.True(t, scalar.Equal(Const(-3), 0))

	require.Error(t, json.Unmarshal([]byte(`"x"`), &scalar))
}

func TestExprEqualTolerance(t *testing.T) {
	assert.True(t, Poly(1, 1e-12).Equal(Const(1), 1e-9))
	assert.False(t, Poly(1, 1e-3).Equal(Const(1), 1e-9))
}
