package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"cooktime/calculator"
	"cooktime/material"
	"cooktime/model"
	"cooktime/oven"
)

// Hub 每个连接一个，保存该连接的输入参数并处理计算请求
type Hub struct {
	calc     *calculator.Calculator
	executor *calculator.Executor
	settings *oven.Settings // 只在 handleRequest 中读写

	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response，只有 handleResponse 写连接
	reply chan model.Msg

	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	cancel context.CancelFunc // 正在进行的计算
	ctx    context.Context
	stop   context.CancelFunc
}

func NewHub(calc *calculator.Calculator, executor *calculator.Executor) *Hub {
	ctx, stop := context.WithCancel(context.Background())
	return &Hub{
		calc:     calc,
		executor: executor,
		settings: oven.NewSettings(),
		msg:      make(chan model.Msg, 10),
		reply:    make(chan model.Msg, 10),
		done:     make(chan struct{}),
		ctx:      ctx,
		stop:     stop,
	}
}

func (h *Hub) close() {
	h.closeOnce.Do(func() {
		h.stop()
		close(h.done)
	})
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

func (h *Hub) sendError(err error) {
	h.send(model.Msg{Type: model.TypeError, Content: err.Error()})
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Error("write message failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			h.dispatch(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) {
	switch msg.Type {
	case model.TypeEnv:
		if err := h.applyEnv(msg.Content); err != nil {
			h.sendError(err)
			return
		}
		h.send(model.Msg{Type: model.TypeEnvSet, Content: "env is set"})
	case model.TypeStart:
		in, err := h.settings.Input()
		if err != nil {
			h.sendError(err)
			return
		}
		name := h.settings.Material.Name()
		ctx := h.startCalculation()
		go h.estimate(ctx, name, in)
	case model.TypeCompare:
		inputs, names, err := h.compareInputs()
		if err != nil {
			h.sendError(err)
			return
		}
		ctx := h.startCalculation()
		go h.compare(ctx, names, inputs)
	case model.TypeStop:
		h.stopCalculation()
		h.send(model.Msg{Type: model.TypeStopped, Content: "stopped"})
	default:
		log.WithField("type", msg.Type).Warn("no such type")
		h.sendError(fmt.Errorf("no such type: %q", msg.Type))
	}
}

func (h *Hub) applyEnv(content string) error {
	var env model.Env
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return fmt.Errorf("invalid env: %w", err)
	}
	// 先全部校验，再修改
	kind := h.settings.Material
	if env.Material != "" {
		k, err := material.Parse(env.Material)
		if err != nil {
			return err
		}
		kind = k
	}
	for _, v := range []*float64{env.LengthCm, env.ThicknessCm} {
		if v != nil && !(*v > 0) {
			return fmt.Errorf("%w: size must be positive, got %v cm", calculator.ErrInvalidGeometry, *v)
		}
	}

	if env.LengthCm != nil {
		h.settings.SetLength(*env.LengthCm)
	}
	if env.ThicknessCm != nil {
		h.settings.SetThickness(*env.ThicknessCm)
	}
	if env.TemperatureF != nil {
		h.settings.SetTemperature(*env.TemperatureF)
	}
	return h.settings.SetMaterial(kind)
}

func (h *Hub) compareInputs() ([]calculator.Input, []string, error) {
	presets := material.All()
	inputs := make([]calculator.Input, 0, len(presets))
	names := make([]string, 0, len(presets))
	s := *h.settings
	for _, p := range presets {
		s.Material = p.Kind
		in, err := s.Input()
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, in)
		names = append(names, p.Name)
	}
	return inputs, names, nil
}

// 开始新的计算前取消上一次计算
func (h *Hub) startCalculation() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	ctx, cancel := context.WithCancel(h.ctx)
	h.cancel = cancel
	return ctx
}

func (h *Hub) stopCalculation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *Hub) estimate(ctx context.Context, name string, in calculator.Input) {
	res, err := h.calc.Estimate(ctx, in)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.sendError(err)
		return
	}
	// 停止之后不再返回结果
	if ctx.Err() != nil {
		return
	}
	h.sendJSON(model.TypeResult, cookTime(name, res, nil))
}

func (h *Hub) compare(ctx context.Context, names []string, inputs []calculator.Input) {
	outcomes := h.executor.EstimateAll(ctx, inputs)
	if ctx.Err() != nil {
		return
	}
	times := make([]model.CookTime, len(outcomes))
	for i, o := range outcomes {
		times[i] = cookTime(names[i], o.Result, o.Err)
	}
	h.sendJSON(model.TypeCompared, times)
}

func (h *Hub) sendJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.sendError(err)
		return
	}
	h.send(model.Msg{Type: typ, Content: string(data)})
}

func cookTime(name string, res calculator.Result, err error) model.CookTime {
	if err != nil {
		return model.CookTime{Material: name, Error: err.Error()}
	}
	return model.CookTime{
		Material:          name,
		Seconds:           res.Seconds,
		Minutes:           res.Minutes,
		Label:             oven.FormatMinutes(res.Minutes),
		Steps:             res.Steps,
		CenterTemperature: res.CenterTemperature,
	}
}
