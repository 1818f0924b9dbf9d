package sandbox

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MJE43/fxparams/internal/engine"
	"github.com/MJE43/fxparams/internal/params"
)

const (
	maxSafeInteger   = 1<<53 - 1
	defaultMaxLength = 64
	hexDigits        = "0123456789abcdef"
)

func sample(p params.Parameter, src *engine.Rand) any {
	switch v := p.(type) {
	case params.Number:
		opts, _ := v.Options()
		return sampleNumber(opts, src)
	case params.BigInt:
		opts, _ := v.Options()
		return sampleBigInt(opts, src)
	case params.String:
		opts, _ := v.Options()
		return sampleString(opts, src)
	case params.Select:
		choices := v.Choices()
		if len(choices) == 0 {
			return nil
		}
		return choices[pick(src, len(choices))]
	case params.Color:
		return fmt.Sprintf("%06xff", pick(src, 1<<24))
	case params.Boolean:
		return src.Float() < 0.5
	}
	return nil
}

func sampleNumber(opts params.NumberOptions, src *engine.Rand) float64 {
	lo, hi := float64(-maxSafeInteger), float64(maxSafeInteger)
	if opts.Min != nil {
		lo = *opts.Min
	}
	if opts.Max != nil {
		hi = *opts.Max
	}
	if hi < lo {
		return lo
	}
	v := lo + src.Float()*(hi-lo)
	if opts.Step == nil || *opts.Step <= 0 {
		return v
	}
	step := decimal.NewFromFloat(*opts.Step)
	base := decimal.NewFromFloat(lo)
	snapped := decimal.NewFromFloat(v).Sub(base).Div(step).Round(0).Mul(step).Add(base)
	if snapped.GreaterThan(decimal.NewFromFloat(hi)) {
		snapped = snapped.Sub(step)
	}
	return snapped.InexactFloat64()
}

func sampleBigInt(opts params.BigIntOptions, src *engine.Rand) *big.Int {
	lo, hi := big.NewInt(-maxSafeInteger), big.NewInt(maxSafeInteger)
	step := big.NewInt(1)
	if opts.Min != nil {
		lo = opts.Min
	}
	if opts.Max != nil {
		hi = opts.Max
	}
	if opts.Step != nil && opts.Step.Sign() > 0 {
		step = opts.Step
	}
	if hi.Cmp(lo) < 0 {
		return new(big.Int).Set(lo)
	}
	// Number of reachable values: floor((hi-lo)/step) + 1.
	count := new(big.Int).Sub(hi, lo)
	count.Quo(count, step).Add(count, big.NewInt(1))
	k := src.BigInt(count)
	return k.Mul(k, step).Add(k, lo)
}

func sampleString(opts params.StringOptions, src *engine.Rand) string {
	lo, hi := 0, defaultMaxLength
	if opts.MinLength != nil {
		lo = *opts.MinLength
	}
	if opts.MaxLength != nil {
		hi = *opts.MaxLength
	}
	lo, hi = max(lo, 0), max(hi, 0)
	n := lo
	if hi > lo {
		n = lo + pick(src, hi-lo)
	}
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(hexDigits[pick(src, len(hexDigits))])
	}
	return sb.String()
}

// pick returns an integer in [0, n).
func pick(src *engine.Rand, n int) int {
	i := int(math.Floor(src.Float() * float64(n)))
	return min(i, n-1)
}
