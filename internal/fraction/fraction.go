package fraction

import (
	"errors"
	"math/big"
)

// ErrDivisionByZero is returned for a zero denominator or a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Rounding selects how a truncated decimal rendering treats the remainder.
type Rounding int

const (
	// RoundDown truncates toward zero.
	RoundDown Rounding = iota
	// RoundHalfUp rounds to nearest, ties away from zero.
	RoundHalfUp
	// RoundUp rounds away from zero whenever a remainder exists.
	RoundUp
)

// Fraction is an exact rational number. The denominator is always positive
// after construction; the sign lives on the numerator. Values are immutable:
// every operation allocates a new Fraction and never touches its operands.
type Fraction struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// New builds a fraction from numerator/denominator. A zero denominator
// fails with ErrDivisionByZero.
func New(numerator, denominator *big.Int) (*Fraction, error) {
	if denominator.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	num := new(big.Int).Set(numerator)
	den := new(big.Int).Set(denominator)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return &Fraction{Numerator: num, Denominator: den}, nil
}

// FromBig builds a whole-number fraction.
func FromBig(n *big.Int) *Fraction {
	return &Fraction{Numerator: new(big.Int).Set(n), Denominator: big.NewInt(1)}
}

// FromInt builds a whole-number fraction from an int64.
func FromInt(n int64) *Fraction {
	return &Fraction{Numerator: big.NewInt(n), Denominator: big.NewInt(1)}
}

// Add returns f + other.
func (f *Fraction) Add(other *Fraction) *Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return &Fraction{
			Numerator:   new(big.Int).Add(f.Numerator, other.Numerator),
			Denominator: new(big.Int).Set(f.Denominator),
		}
	}
	left := new(big.Int).Mul(f.Numerator, other.Denominator)
	right := new(big.Int).Mul(other.Numerator, f.Denominator)
	return &Fraction{
		Numerator:   left.Add(left, right),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Sub returns f - other.
func (f *Fraction) Sub(other *Fraction) *Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return &Fraction{
			Numerator:   new(big.Int).Sub(f.Numerator, other.Numerator),
			Denominator: new(big.Int).Set(f.Denominator),
		}
	}
	left := new(big.Int).Mul(f.Numerator, other.Denominator)
	right := new(big.Int).Mul(other.Numerator, f.Denominator)
	return &Fraction{
		Numerator:   left.Sub(left, right),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Mul returns f * other.
func (f *Fraction) Mul(other *Fraction) *Fraction {
	return &Fraction{
		Numerator:   new(big.Int).Mul(f.Numerator, other.Numerator),
		Denominator: new(big.Int).Mul(f.Denominator, other.Denominator),
	}
}

// Div returns f / other. A zero-valued divisor fails with ErrDivisionByZero.
func (f *Fraction) Div(other *Fraction) (*Fraction, error) {
	if other.Numerator.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return New(
		new(big.Int).Mul(f.Numerator, other.Denominator),
		new(big.Int).Mul(f.Denominator, other.Numerator),
	)
}

// Invert returns 1/f. A zero value fails with ErrDivisionByZero.
func (f *Fraction) Invert() (*Fraction, error) {
	if f.Numerator.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return New(f.Denominator, f.Numerator)
}

// Cmp compares f against other by cross-multiplication, never through
// floating point. It returns -1, 0, or +1.
func (f *Fraction) Cmp(other *Fraction) int {
	left := new(big.Int).Mul(f.Numerator, other.Denominator)
	right := new(big.Int).Mul(other.Numerator, f.Denominator)
	return left.Cmp(right)
}

// Equal reports numeric equality regardless of representation.
func (f *Fraction) Equal(other *Fraction) bool { return f.Cmp(other) == 0 }

// LessThan reports f < other.
func (f *Fraction) LessThan(other *Fraction) bool { return f.Cmp(other) < 0 }

// GreaterThan reports f > other.
func (f *Fraction) GreaterThan(other *Fraction) bool { return f.Cmp(other) > 0 }

// Sign returns the sign of the fraction.
func (f *Fraction) Sign() int { return f.Numerator.Sign() }

// Quotient returns the integer part of the fraction, truncated toward zero.
func (f *Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.Numerator, f.Denominator)
}

// roundedQuot divides num by den (den > 0) applying the rounding mode to the
// magnitude, so RoundUp and RoundHalfUp ties move away from zero.
func roundedQuot(num, den *big.Int, mode Rounding) *big.Int {
	quot, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() == 0 {
		return quot
	}

	bump := false
	switch mode {
	case RoundDown:
	case RoundUp:
		bump = true
	case RoundHalfUp:
		twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
		bump = twice.Cmp(den) >= 0
	}
	if bump {
		if num.Sign() < 0 {
			quot.Sub(quot, bigOne)
		} else {
			quot.Add(quot, bigOne)
		}
	}
	return quot
}

var bigOne = big.NewInt(1)
var bigTen = big.NewInt(10)

// ToFixed renders the fraction as a decimal string with exactly places
// digits after the point, rounded per mode.
func (f *Fraction) ToFixed(places int, mode Rounding) string {
	if places < 0 {
		places = 0
	}
	scale := new(big.Int).Exp(bigTen, big.NewInt(int64(places)), nil)
	scaled := new(big.Int).Mul(f.Numerator, scale)
	quot := roundedQuot(scaled, f.Denominator, mode)
	return formatScaled(quot, places)
}

// ToSignificant renders the fraction with at most significant digits of
// precision, trailing zeros trimmed. significant must be positive.
func (f *Fraction) ToSignificant(significant int, mode Rounding) string {
	if significant <= 0 {
		significant = 1
	}
	if f.Numerator.Sign() == 0 {
		return "0"
	}

	exp := f.exponent10()
	decimals := significant - 1 - exp
	if decimals >= 0 {
		return trimTrailingZeros(f.ToFixed(decimals, mode))
	}

	// Rounding left of the decimal point: round to a multiple of 10^-decimals.
	pow := new(big.Int).Exp(bigTen, big.NewInt(int64(-decimals)), nil)
	den := new(big.Int).Mul(f.Denominator, pow)
	quot := roundedQuot(f.Numerator, den, mode)
	quot.Mul(quot, pow)
	return quot.String()
}

// exponent10 returns e such that 10^e <= |f| < 10^(e+1).
func (f *Fraction) exponent10() int {
	absNum := new(big.Int).Abs(f.Numerator)
	exp := len(absNum.Text(10)) - len(f.Denominator.Text(10))

	// The digit-count estimate can be off by one in either direction.
	for {
		if cmpScaled(absNum, f.Denominator, exp) < 0 {
			exp--
			continue
		}
		if cmpScaled(absNum, f.Denominator, exp+1) >= 0 {
			exp++
			continue
		}
		return exp
	}
}

// cmpScaled compares absNum/den against 10^exp without losing precision.
func cmpScaled(absNum, den *big.Int, exp int) int {
	left := absNum
	right := den
	if exp >= 0 {
		right = new(big.Int).Mul(den, new(big.Int).Exp(bigTen, big.NewInt(int64(exp)), nil))
	} else {
		left = new(big.Int).Mul(absNum, new(big.Int).Exp(bigTen, big.NewInt(int64(-exp)), nil))
	}
	return left.Cmp(right)
}

func formatScaled(scaled *big.Int, places int) string {
	neg := scaled.Sign() < 0
	digits := new(big.Int).Abs(scaled).Text(10)
	if places == 0 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	for len(digits) <= places {
		digits = "0" + digits
	}
	cut := len(digits) - places
	out := digits[:cut] + "." + digits[cut:]
	if neg {
		return "-" + out
	}
	return out
}

func trimTrailingZeros(s string) string {
	if !containsDot(s) {
		return s
	}
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}
