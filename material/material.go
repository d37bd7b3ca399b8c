package material

import (
	"fmt"
	"strings"

	"cooktime/calculator"
)

type Kind int

const (
	Salmon Kind = iota
	Chicken
	BeefLean
	PorkLean
	Veal
)

// Preset 一种食材的安全温度和物性参数
type Preset struct {
	Kind            Kind                `json:"-"`
	Tag             string              `json:"tag"`
	Name            string              `json:"name"`
	SafeTemperature float64             `json:"safe_temperature"` // K, USDA 推荐
	Properties      calculator.Material `json:"properties"`
}

// 物性参数表
// 三文鱼: Radhakrishnan, Measurement of thermal properties of seafood (1997)
// 牛肉、猪肉、小牛肉: Cengel, Heat Transfer: A Practical Approach, 2nd Ed., Appendix A.7
var presets = [...]Preset{
	Salmon:   {Salmon, "Salmon", "Salmon", 336, calculator.Material{SpecificHeat: 3600, Conductivity: 0.4711, Density: 1037.41}},
	Chicken:  {Chicken, "Chicken", "Chicken", 347, calculator.Material{SpecificHeat: 3560, Conductivity: 0.476, Density: 1050}},
	BeefLean: {BeefLean, "BeefLean", "Beef (Lean)", 344, calculator.Material{SpecificHeat: 3540, Conductivity: 0.471, Density: 1090}},
	PorkLean: {PorkLean, "PorkLean", "Pork (Lean)", 344, calculator.Material{SpecificHeat: 3490, Conductivity: 0.456, Density: 1030}},
	Veal:     {Veal, "Veal", "Veal", 344, calculator.Material{SpecificHeat: 3560, Conductivity: 0.470, Density: 1060}},
}

func (k Kind) Valid() bool {
	return k >= Salmon && k <= Veal
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return presets[k].Tag
}

func (k Kind) Name() string {
	if !k.Valid() {
		return k.String()
	}
	return presets[k].Name
}

// Parse 名称必须与显示名称或标签完全一致（不区分大小写），不做子串匹配
func Parse(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(name, p.Name) || strings.EqualFold(name, p.Tag) {
			return p.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown material %q", calculator.ErrInvalidMaterial, name)
}

func Lookup(k Kind) (Preset, error) {
	if !k.Valid() {
		return Preset{}, fmt.Errorf("%w: unknown material kind %d", calculator.ErrInvalidMaterial, int(k))
	}
	return presets[k], nil
}

func All() []Preset {
	all := make([]Preset, len(presets))
	copy(all, presets[:])
	return all
}

func Names() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}
