package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetClass identifies one of the six fixed investment categories.
// The set is closed: every Portfolio covers exactly these classes.
type AssetClass int

const (
	Equities AssetClass = iota
	FixedIncome
	RealEstate
	Commodities
	Crypto
	Cash

	// NumAssetClasses is the size of the closed asset class set
	NumAssetClasses = 6
)

var assetClassNames = [NumAssetClasses]string{
	"Equities",
	"Fixed_Income",
	"Real_Estate",
	"Commodities",
	"Crypto",
	"Cash",
}

// String returns the canonical name of the asset class
func (a AssetClass) String() string {
	if a < 0 || int(a) >= NumAssetClasses {
		return fmt.Sprintf("AssetClass(%d)", int(a))
	}
	return assetClassNames[a]
}

// AssetClassNames returns the canonical class names in order
func AssetClassNames() []string {
	return assetClassNames[:]
}

// ParseAssetClass resolves a class name to its AssetClass.
// Spaces are normalized to underscores ("Fixed Income" -> "Fixed_Income").
func ParseAssetClass(name string) (AssetClass, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	for i, n := range assetClassNames {
		if n == normalized {
			return AssetClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown asset class %q", name)
}

// Portfolio maps each asset class to a monetary value. The fixed-size
// representation keeps the simulation hot loop free of key lookups, and
// copies are cheap value copies: callers always receive new Portfolios,
// never mutated views of their own.
type Portfolio [NumAssetClasses]float64

// New returns an empty portfolio with all asset classes at zero
func New() Portfolio {
	return Portfolio{}
}

// Total returns the sum of values across all asset classes
func (p Portfolio) Total() float64 {
	total := 0.0
	for _, v := range p {
		total += v
	}
	return total
}

// Validate checks that every asset class value is non-negative
func (p Portfolio) Validate() error {
	for i, v := range p {
		if v < 0 {
			return fmt.Errorf("asset class %s has negative value %.2f", AssetClass(i), v)
		}
	}
	return nil
}

// Add returns a new portfolio with the additions applied element-wise.
// Negative additions are allowed as long as no class goes below zero.
func (p Portfolio) Add(additions Portfolio) (Portfolio, error) {
	result := p
	for i, v := range additions {
		result[i] += v
		if result[i] < 0 {
			return Portfolio{}, fmt.Errorf(
				"addition would leave asset class %s negative (%.2f)", AssetClass(i), result[i])
		}
	}
	return result, nil
}

// AddWithAllocation distributes amount across classes according to the given
// allocation ratios. Ratios for absent classes are treated as zero.
func (p Portfolio) AddWithAllocation(amount float64, allocation map[string]float64) (Portfolio, error) {
	var additions Portfolio
	for name, ratio := range allocation {
		class, err := ParseAssetClass(name)
		if err != nil {
			return Portfolio{}, err
		}
		additions[class] = amount * ratio
	}
	return p.Add(additions)
}

// Summary holds total value, per-class percentage allocation and the
// number of funded classes for a portfolio.
type Summary struct {
	TotalValue  float64   `json:"total_value"`
	AssetValues Portfolio `json:"asset_values"`
	Percentages Portfolio `json:"asset_percentages"`
	AssetCount  int       `json:"asset_count"`
}

// Summarize returns summary statistics for the portfolio. An empty
// portfolio yields all-zero percentages rather than dividing by zero.
func (p Portfolio) Summarize() Summary {
	s := Summary{
		TotalValue:  p.Total(),
		AssetValues: p,
	}
	for _, v := range p {
		if v > 0 {
			s.AssetCount++
		}
	}
	if s.TotalValue == 0 {
		return s
	}
	for i, v := range p {
		s.Percentages[i] = (v / s.TotalValue) * 100
	}
	return s
}

// AddAssetClass returns a new portfolio with amount added to a single class
func (p Portfolio) AddAssetClass(class AssetClass, amount float64) (Portfolio, error) {
	var additions Portfolio
	additions[class] = amount
	return p.Add(additions)
}

// MarshalJSON encodes the portfolio as a name -> value object with all six keys
func (p Portfolio) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, NumAssetClasses)
	for i, v := range p {
		m[assetClassNames[i]] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a name -> value object. Absent classes default to
// zero; unknown keys are rejected at this boundary so the simulation loop
// never has to check them.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var result Portfolio
	for name, value := range m {
		class, err := ParseAssetClass(name)
		if err != nil {
			return err
		}
		result[class] = value
	}

	*p = result
	return nil
}
