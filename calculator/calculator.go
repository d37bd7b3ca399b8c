package calculator

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

// 每迭代 pollInterval 步检查一次 ctx
const pollInterval = 4096

// Input 一次计算的全部参数，均为国际单位
type Input struct {
	Length             float64  `json:"length"`              // m
	Thickness          float64  `json:"thickness"`           // m
	SurfaceTemperature float64  `json:"surface_temperature"` // 炉温, K
	TargetTemperature  float64  `json:"target_temperature"`  // 安全温度, K
	Material           Material `json:"material"`
}

type Result struct {
	Steps             int     `json:"steps"`
	TimeStep          float64 `json:"time_step"` // s
	Seconds           float64 `json:"seconds"`
	Minutes           float64 `json:"minutes"`
	CenterTemperature float64 `json:"center_temperature"` // 结束时中心温度, K
	Diffusivity       float64 `json:"diffusivity"`
	NX                int     `json:"nx"`
	NY                int     `json:"ny"`
}

type Calculator struct {
	spatialStep        float64
	initialTemperature float64
	maxSteps           int
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{
		spatialStep:        cfg.SpatialStep,
		initialTemperature: cfg.InitialTemperature,
		maxSteps:           cfg.MaxSteps,
	}
}

func (c *Calculator) InitialTemperature() float64 {
	return c.initialTemperature
}

// 迭代开始前检查温度条件
func (c *Calculator) checkTemperatures(in Input) error {
	for _, t := range []float64{in.SurfaceTemperature, in.TargetTemperature} {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: temperatures must be finite, got surface=%v target=%v",
				ErrNonConvergent, in.SurfaceTemperature, in.TargetTemperature)
		}
	}
	if in.SurfaceTemperature <= c.initialTemperature {
		return fmt.Errorf("%w: surface temperature %v K does not exceed initial temperature %v K",
			ErrNonConvergent, in.SurfaceTemperature, c.initialTemperature)
	}
	// 内部温度不会超过表面温度；等于表面温度时交给 MaxSteps 限制
	if in.TargetTemperature > in.SurfaceTemperature {
		return fmt.Errorf("%w: target temperature %v K exceeds surface temperature %v K",
			ErrNonConvergent, in.TargetTemperature, in.SurfaceTemperature)
	}
	return nil
}

// Estimate 从均匀的初始温度开始迭代，直到几何中心节点温度首次达到目标温度，返回模拟经过的时间
func (c *Calculator) Estimate(ctx context.Context, in Input) (Result, error) {
	// 所有检查都在分配温度场之前完成
	nX, nY, err := GridSize(in.Length, in.Thickness, c.spatialStep)
	if err != nil {
		return Result{}, err
	}
	if err := in.Material.Validate(); err != nil {
		return Result{}, err
	}
	if err := c.checkTemperatures(in); err != nil {
		return Result{}, err
	}

	alpha := Diffusivity(in.Material)
	p := StepParams{
		Diffusivity:        alpha,
		SpatialStep:        c.spatialStep,
		TimeStep:           TimeStep(alpha, c.spatialStep),
		SurfaceTemperature: in.SurfaceTemperature,
	}
	prev := NewGrid(nX, nY, c.initialTemperature)
	next := NewGrid(nX, nY, c.initialTemperature)
	cx, cy := prev.Center()

	start := time.Now()
	log.WithFields(log.Fields{
		"nx":          prev.NX,
		"ny":          prev.NY,
		"diffusivity": alpha,
		"dt":          p.TimeStep,
		"surface":     in.SurfaceTemperature,
		"target":      in.TargetTemperature,
	}).Debug("开始计算")

	steps := 0
	for {
		if err := Step(next, prev, p); err != nil {
			return Result{}, err
		}
		prev, next = next, prev // 交换缓冲区，旧的温度场作为下一步的输出
		steps++

		if center := prev.At(cx, cy); center >= in.TargetTemperature {
			res := Result{
				Steps:             steps,
				TimeStep:          p.TimeStep,
				Seconds:           float64(steps) * p.TimeStep,
				CenterTemperature: center,
				Diffusivity:       alpha,
				NX:                prev.NX,
				NY:                prev.NY,
			}
			res.Minutes = res.Seconds / 60
			log.WithFields(log.Fields{
				"steps":   steps,
				"seconds": res.Seconds,
				"elapsed": time.Since(start),
			}).Debug("计算完成")
			return res, nil
		}

		if c.maxSteps > 0 && steps >= c.maxSteps {
			return Result{}, &RunError{
				Steps:   steps,
				Seconds: float64(steps) * p.TimeStep,
				Err:     fmt.Errorf("%w: step ceiling %d reached", ErrNonConvergent, c.maxSteps),
			}
		}
		if steps%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, &RunError{Steps: steps, Seconds: float64(steps) * p.TimeStep, Err: err}
			}
		}
	}
}

// EstimateCookTime 使用默认配置计算，返回秒数
func EstimateCookTime(length, thickness, surfaceTemp, targetTemp, specificHeat, conductivity, density float64) (float64, error) {
	res, err := NewCalculator(DefaultConfig()).Estimate(context.Background(), Input{
		Length:             length,
		Thickness:          thickness,
		SurfaceTemperature: surfaceTemp,
		TargetTemperature:  targetTemp,
		Material: Material{
			SpecificHeat: specificHeat,
			Conductivity: conductivity,
			Density:      density,
		},
	})
	if err != nil {
		return 0, err
	}
	return res.Seconds, nil
}
