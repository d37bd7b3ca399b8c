package oven

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"cooktime/calculator"
	"cooktime/material"
)

// 界面默认值
const (
	DefaultLengthCm     = 5
	DefaultThicknessCm  = 5
	DefaultTemperatureF = 350
	DefaultMaterial     = material.Chicken
)

// Settings 用户输入：食材尺寸（cm）、炉温（°F）、食材种类
type Settings struct {
	LengthCm     float64
	ThicknessCm  float64
	TemperatureF float64
	Material     material.Kind
}

func NewSettings() *Settings {
	return &Settings{
		LengthCm:     DefaultLengthCm,
		ThicknessCm:  DefaultThicknessCm,
		TemperatureF: DefaultTemperatureF,
		Material:     DefaultMaterial,
	}
}

func (s *Settings) SetLength(cm float64) {
	s.LengthCm = cm
	log.WithField("length_cm", cm).Info("设置食材长度")
}

func (s *Settings) SetThickness(cm float64) {
	s.ThicknessCm = cm
	log.WithField("thickness_cm", cm).Info("设置食材厚度")
}

func (s *Settings) SetTemperature(f float64) {
	s.TemperatureF = f
	log.WithFields(log.Fields{
		"temperature_f": f,
		"temperature_k": FahrenheitToKelvin(f),
	}).Info("设置炉温")
}

func (s *Settings) SetMaterial(k material.Kind) error {
	if _, err := material.Lookup(k); err != nil {
		return err
	}
	s.Material = k
	log.WithField("material", k.Name()).Info("设置食材种类")
	return nil
}

// Input 转换为国际单位的计算参数
func (s Settings) Input() (calculator.Input, error) {
	preset, err := material.Lookup(s.Material)
	if err != nil {
		return calculator.Input{}, err
	}
	return calculator.Input{
		Length:             CentimetersToMeters(s.LengthCm),
		Thickness:          CentimetersToMeters(s.ThicknessCm),
		SurfaceTemperature: FahrenheitToKelvin(s.TemperatureF),
		TargetTemperature:  preset.SafeTemperature,
		Material:           preset.Properties,
	}, nil
}

func CentimetersToMeters(cm float64) float64 {
	return cm / 100
}

// 炉温取整到开尔文
func FahrenheitToKelvin(f float64) float64 {
	return math.Trunc((f + 459.67) * 5 / 9)
}

// 结果显示，分钟数保留两位小数，整数也保留一位小数，如 "3.0 minutes!"
func FormatMinutes(minutes float64) string {
	rounded := math.Round(minutes*100) / 100
	text := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return fmt.Sprintf("%s minutes!", text)
}
