package types

import (
	"regexp"
	"sort"
	"strings"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"
)

// MaxCoinBits bounds every amount the vesting actors accept or report to an unsigned 128-bit integer.
const MaxCoinBits = 128

var denomRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)

// Coin is an amount of a single fungible asset, identified by its denom.
type Coin struct {
	Denom  string
	Amount abi.TokenAmount
}

func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: abi.NewTokenAmount(amount)}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Validate checks the denom is well formed and the amount is non-negative and fits 128 bits.
func (c Coin) Validate() error {
	if err := ValidateDenom(c.Denom); err != nil {
		return err
	}
	if c.Amount.Nil() {
		return xerrors.Errorf("nil amount for denom %s", c.Denom)
	}
	if c.Amount.Sign() < 0 {
		return xerrors.Errorf("negative amount %v for denom %s", c.Amount, c.Denom)
	}
	if c.Amount.BitLen() > MaxCoinBits {
		return xerrors.Errorf("amount %v for denom %s exceeds %d bits", c.Amount, c.Denom, MaxCoinBits)
	}
	return nil
}

func ValidateDenom(denom string) error {
	if !denomRegex.MatchString(denom) {
		return xerrors.Errorf("invalid denom %q", denom)
	}
	return nil
}

// Coins is a set of coins with distinct denoms.
// Values produced by this package are sorted by denom and contain no zero amounts.
type Coins []Coin

func NewCoins(coins ...Coin) Coins {
	return Coins{}.Add(coins...)
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) AmountOf(denom string) abi.TokenAmount {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return big.Zero()
}

// Validate checks every coin and rejects duplicate denoms.
func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := seen[c.Denom]; ok {
			return xerrors.Errorf("duplicate denom %s", c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}

// Add returns the sum of cs and the given coins.
func (cs Coins) Add(coins ...Coin) Coins {
	sums := make(map[string]abi.TokenAmount, len(cs)+len(coins))
	for _, c := range cs {
		sums[c.Denom] = big.Add(orZero(sums[c.Denom]), c.Amount)
	}
	for _, c := range coins {
		sums[c.Denom] = big.Add(orZero(sums[c.Denom]), c.Amount)
	}
	return fromSums(sums)
}

// Sub returns cs minus the given coins, failing if any denom would go negative.
func (cs Coins) Sub(coins ...Coin) (Coins, error) {
	sums := make(map[string]abi.TokenAmount, len(cs))
	for _, c := range cs {
		sums[c.Denom] = c.Amount
	}
	for _, c := range coins {
		rem := big.Sub(orZero(sums[c.Denom]), c.Amount)
		if rem.Sign() < 0 {
			return nil, xerrors.Errorf("insufficient %s: have %v, need %v", c.Denom, cs.AmountOf(c.Denom), c.Amount)
		}
		sums[c.Denom] = rem
	}
	return fromSums(sums), nil
}

// IsAllGTE reports whether cs holds at least the given coins in every denom.
func (cs Coins) IsAllGTE(coins Coins) bool {
	_, err := cs.Sub(coins...)
	return err == nil
}

func (cs Coins) Equals(other Coins) bool {
	a, b := NewCoins(cs...), NewCoins(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Denom != b[i].Denom || !a[i].Amount.Equals(b[i].Amount) {
			return false
		}
	}
	return true
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func fromSums(sums map[string]abi.TokenAmount) Coins {
	out := make(Coins, 0, len(sums))
	for denom, amt := range sums {
		if amt.IsZero() {
			continue
		}
		out = append(out, Coin{Denom: denom, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

func orZero(amt abi.TokenAmount) abi.TokenAmount {
	if amt.Nil() {
		return big.Zero()
	}
	return amt
}
