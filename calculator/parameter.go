package calculator

import (
	"fmt"
	"math"
)

// Material 物性参数，整个计算过程中保持不变
type Material struct {
	SpecificHeat float64 `json:"specific_heat"` // 比热容 J/(kg·K)
	Conductivity float64 `json:"conductivity"`  // 导热系数 W/(m·K)
	Density      float64 `json:"density"`       // 密度 kg/m³
}

func (m Material) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"specific heat", m.SpecificHeat},
		{"conductivity", m.Conductivity},
		{"density", m.Density},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidMaterial, v.name, v.value)
		}
	}
	return nil
}

// 热扩散率 α = k / (ρ·c)，单位 m²/s
func Diffusivity(m Material) float64 {
	return m.Conductivity / (m.Density * m.SpecificHeat)
}

// TimeStep 显式格式的稳定时间步长 dt = dx²·dy² / (2α(dx²+dy²))，dx = dy。
// 结果不会超过 dx²/(4α)。
func TimeStep(alpha, dx float64) float64 {
	dx2 := dx * dx
	dy2 := dx2
	dt := dx2 * dy2 / (2 * alpha * (dx2 + dy2))
	if limit := dx2 / (4 * alpha); dt > limit {
		dt = limit
	}
	return dt
}
