package calculator

import (
	"errors"
	"fmt"
)

var (
	// 尺寸非法，或者网格数小于 3
	ErrInvalidGeometry = errors.New("calculator: invalid geometry")

	// 中心温度永远达不到目标温度
	ErrNonConvergent = errors.New("calculator: simulation does not converge")

	// 物性参数非法，或者材料名称无法识别
	ErrInvalidMaterial = errors.New("calculator: invalid material")
)

// RunError 记录迭代被中止时的步数和模拟时间
type RunError struct {
	Steps   int
	Seconds float64
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%v after %d steps (%.2f s simulated)", e.Err, e.Steps, e.Seconds)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
