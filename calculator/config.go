package calculator

import (
	"fmt"

	"gopkg.in/ini.v1"
)

const (
	DefaultSpatialStep        = 0.001 // m
	DefaultInitialTemperature = 273.0 // K
	DefaultMaxSteps           = 10000000
	DefaultWorkers            = 4
	DefaultAddr               = ":9000"
)

type Config struct {
	SpatialStep        float64
	InitialTemperature float64
	MaxSteps           int // <= 0 不限制

	Workers int
	Addr    string
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

// 读取 ini 配置文件，缺失的键使用默认值
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := loadCfg(file)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	return Config{
		SpatialStep:        file.Section("calculator").Key("SpatialStep").MustFloat64(DefaultSpatialStep),
		InitialTemperature: file.Section("calculator").Key("InitialTemperature").MustFloat64(DefaultInitialTemperature),
		MaxSteps:           file.Section("calculator").Key("MaxSteps").MustInt(DefaultMaxSteps),
		Workers:            file.Section("executor").Key("Workers").MustInt(DefaultWorkers),
		Addr:               file.Section("server").Key("Addr").MustString(DefaultAddr),
	}
}

func (c Config) Validate() error {
	if !(c.SpatialStep > 0) {
		return fmt.Errorf("config: SpatialStep must be positive, got %v", c.SpatialStep)
	}
	if !(c.InitialTemperature > 0) {
		return fmt.Errorf("config: InitialTemperature must be positive, got %v", c.InitialTemperature)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: Workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
