package calculator

import (
	"fmt"
	"math"
)

// 网格至少需要一行/一列内部节点
const minCells = 3

// 单个温度场的最大节点数，两个缓冲区各 128 MiB
const maxCells = 1 << 24

// 浮点误差下 0.05/0.001 可能得到 49.999...，取整前加一个相对误差
const cellEpsilon = 1e-9

// Grid 二维温度场，按行优先存放，x 方向为长度，y 方向为厚度
type Grid struct {
	NX, NY int
	values []float64
}

func NewGrid(nX, nY int, initial float64) *Grid {
	g := &Grid{
		NX:     nX,
		NY:     nY,
		values: make([]float64, nX*nY),
	}
	g.Fill(initial)
	return g
}

func (g *Grid) index(i, j int) int {
	return i*g.NY + j
}

func (g *Grid) At(i, j int) float64 {
	return g.values[g.index(i, j)]
}

func (g *Grid) Set(i, j int, t float64) {
	g.values[g.index(i, j)] = t
}

func (g *Grid) Fill(t float64) {
	for k := range g.values {
		g.values[k] = t
	}
}

// 几何中心节点
func (g *Grid) Center() (int, int) {
	return g.NX / 2, g.NY / 2
}

func (g *Grid) CenterTemperature() float64 {
	return g.At(g.Center())
}

func (g *Grid) IsBoundary(i, j int) bool {
	return i == 0 || i == g.NX-1 || j == 0 || j == g.NY-1
}

func (g *Grid) sameShape(o *Grid) bool {
	return g.NX == o.NX && g.NY == o.NY
}

// 根据尺寸计算网格数
func CellCount(size, dx float64) (int, error) {
	n, err := cellCount(size, dx)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// 取整后的网格数，仍为 float64，转换为 int 之前先检查范围
func cellCount(size, dx float64) (float64, error) {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return 0, fmt.Errorf("%w: dimension must be positive, got %v m", ErrInvalidGeometry, size)
	}
	if !(dx > 0) || math.IsInf(dx, 0) {
		return 0, fmt.Errorf("%w: spatial step must be positive, got %v m", ErrInvalidGeometry, dx)
	}
	n := size / dx
	n = math.Floor(n + n*cellEpsilon)
	if n > maxCells {
		return 0, fmt.Errorf("%w: %v m is %v cells at dx=%v m, limit is %d",
			ErrInvalidGeometry, size, n, dx, maxCells)
	}
	return n, nil
}

// GridSize 只计算网格数，不分配内存
func GridSize(length, thickness, dx float64) (int, int, error) {
	nX, err := cellCount(length, dx)
	if err != nil {
		return 0, 0, err
	}
	nY, err := cellCount(thickness, dx)
	if err != nil {
		return 0, 0, err
	}
	if nX < minCells || nY < minCells {
		return 0, 0, fmt.Errorf("%w: %v x %v cells at dx=%v m, need at least %d along each axis",
			ErrInvalidGeometry, nX, nY, dx, minCells)
	}
	if nX*nY > maxCells {
		return 0, 0, fmt.Errorf("%w: %v x %v cells at dx=%v m exceeds the limit of %d cells",
			ErrInvalidGeometry, nX, nY, dx, maxCells)
	}
	return int(nX), int(nY), nil
}

// BuildGrid 划分网格并以初始温度填充整个温度场，包括边界节点
func BuildGrid(length, thickness, dx, initial float64) (*Grid, error) {
	nX, nY, err := GridSize(length, thickness, dx)
	if err != nil {
		return nil, err
	}
	return NewGrid(nX, nY, initial), nil
}
