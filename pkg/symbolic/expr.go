// Package symbolic provides polynomial expressions in the growth rate μ.
//
// Stoichiometric coefficients of coupled reactions are carried as Expr values so
// the growth rate stays a free parameter until a solver substitutes it. Only the
// operations needed by the network core are supported: addition, scaling,
// multiplication and evaluation.
package symbolic

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Variable is the printed name of the growth-rate parameter.
const Variable = "mu"

// Expr is a polynomial in μ. coef[i] multiplies μ^i. The zero value is the
// constant 0.
type Expr struct {
	coef []float64
}

// Const returns the constant expression c.
func Const(c float64) Expr {
	return Expr{coef: []float64{c}}.trim()
}

// Mu returns the expression μ.
func Mu() Expr {
	return Expr{coef: []float64{0, 1}}
}

// Poly builds an expression from coefficients in ascending power order.
func Poly(coef ...float64) Expr {
	return Expr{coef: append([]float64(nil), coef...)}.trim()
}

func (e Expr) trim() Expr {
	n := len(e.coef)
	for n > 0 && e.coef[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Expr{}
	}
	return Expr{coef: e.coef[:n:n]}
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	n := max(len(e.coef), len(o.coef))
	out := make([]float64, n)
	copy(out, e.coef)
	for i, c := range o.coef {
		out[i] += c
	}
	return Expr{coef: out}.trim()
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return e.Scale(-1)
}

// Scale returns c * e.
func (e Expr) Scale(c float64) Expr {
	if c == 0 || len(e.coef) == 0 {
		return Expr{}
	}
	out := make([]float64, len(e.coef))
	for i, v := range e.coef {
		out[i] = v * c
	}
	return Expr{coef: out}.trim()
}

// Mul returns e * o.
func (e Expr) Mul(o Expr) Expr {
	if len(e.coef) == 0 || len(o.coef) == 0 {
		return Expr{}
	}
	out := make([]float64, len(e.coef)+len(o.coef)-1)
	for i, a := range e.coef {
		for j, b := range o.coef {
			out[i+j] += a * b
		}
	}
	return Expr{coef: out}.trim()
}

// Degree reports the polynomial degree. Constants, including zero, have degree 0.
func (e Expr) Degree() int {
	if len(e.coef) == 0 {
		return 0
	}
	return len(e.coef) - 1
}

// Coeff returns the coefficient of μ^power.
func (e Expr) Coeff(power int) float64 {
	if power < 0 || power >= len(e.coef) {
		return 0
	}
	return e.coef[power]
}

// Coefficients returns a copy of the coefficients in ascending power order.
func (e Expr) Coefficients() []float64 {
	return append([]float64(nil), e.coef...)
}

// IsZero reports whether e is identically zero.
func (e Expr) IsZero() bool {
	return len(e.coef) == 0
}

// IsConst reports whether e does not depend on μ.
func (e Expr) IsConst() bool {
	return len(e.coef) <= 1
}

// Eval substitutes mu for the growth rate.
func (e Expr) Eval(mu float64) float64 {
	var out float64
	for i := len(e.coef) - 1; i >= 0; i-- {
		out = out*mu + e.coef[i]
	}
	return out
}

// Equal compares coefficients within an absolute tolerance.
func (e Expr) Equal(o Expr, tol float64) bool {
	n := max(len(e.coef), len(o.coef))
	for i := 0; i < n; i++ {
		if math.Abs(e.Coeff(i)-o.Coeff(i)) > tol {
			return false
		}
	}
	return true
}

// String prints the expression with the highest power first, e.g.
// "-1.2e-05*mu^2 + 3*mu - 1".
func (e Expr) String() string {
	if len(e.coef) == 0 {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(e.coef) - 1; i >= 0; i-- {
		c := e.coef[i]
		if c == 0 {
			continue
		}
		switch {
		case first && c < 0:
			b.WriteString("-")
		case !first && c < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		abs := math.Abs(c)
		if i == 0 || abs != 1 {
			b.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
			if i > 0 {
				b.WriteString("*")
			}
		}
		switch i {
		case 0:
		case 1:
			b.WriteString(Variable)
		default:
			fmt.Fprintf(&b, "%s^%d", Variable, i)
		}
	}
	return b.String()
}

// MarshalJSON encodes the coefficients as an array in ascending power order.
func (e Expr) MarshalJSON() ([]byte, error) {
	if e.coef == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.coef)
}

// UnmarshalJSON accepts an array of coefficients or a bare number.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var coef []float64
	if err := json.Unmarshal(data, &coef); err != nil {
		var c float64
		if err2 := json.Unmarshal(data, &c); err2 != nil {
			return fmt.Errorf("decode expression: %w", err)
		}
		coef = []float64{c}
	}
	*e = Expr{coef: coef}.trim()
	return nil
}
