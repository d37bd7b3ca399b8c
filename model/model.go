package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	TypeEnv      = "env"
	TypeEnvSet   = "envSet"
	TypeStart    = "start"
	TypeResult   = "result"
	TypeCompare  = "compare"
	TypeCompared = "compared"
	TypeStop     = "stop"
	TypeStopped  = "stopped"
	TypeError    = "error"
)

// 界面输入，字段为空时保持原值
type Env struct {
	LengthCm     *float64 `json:"length_cm,omitempty"`
	ThicknessCm  *float64 `json:"thickness_cm,omitempty"`
	TemperatureF *float64 `json:"temperature_f,omitempty"`
	Material     string   `json:"material,omitempty"`
}

// 计算结果
type CookTime struct {
	Material          string  `json:"material"`
	Seconds           float64 `json:"seconds"`
	Minutes           float64 `json:"minutes"`
	Label             string  `json:"label"`
	Steps             int     `json:"steps"`
	CenterTemperature float64 `json:"center_temperature"`
	Error             string  `json:"error,omitempty"`
}
