// internal/bubble/layout.go

package bubble

import (
	"github.com/google/uuid"
)

const (
	// MinExtent 随机范围的最小宽度
	MinExtent = 10.0
	// MinDuration / MaxDuration 动画时长范围 (秒)
	MinDuration = 3.0
	MaxDuration = 6.0
)

// Size 画布尺寸
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Known 尺寸是否已经测量过
func (s Size) Known() bool {
	return s.Width > 0 || s.Height > 0
}

// Point 位置
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Margins 边距，由调用的页面决定
type Margins struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

var (
	// ToneMargins 语气选择页
	ToneMargins = Margins{Horizontal: 60, Vertical: 40}
	// PersonaMargins 人设选择页
	PersonaMargins = Margins{Horizontal: 40, Vertical: 30}
)

// State 一个气泡的布局状态
type State struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Position Point   `json:"position"`
	Duration float64 `json:"duration"`
}

// Source 随机数来源，*rand.Rand 满足该接口
type Source interface {
	Float64() float64
	Read(p []byte) (n int, err error)
}

// Bounds 某个维度上的取值范围 [lo, hi]
type Bounds struct {
	Lo float64
	Hi float64
}

// AxisBounds 计算一个维度的范围，画布不足 2*margin 时保证至少 MinExtent
func AxisBounds(extent, margin float64) Bounds {
	hi := extent - margin
	if hi < margin+MinExtent {
		hi = margin + MinExtent
	}
	return Bounds{Lo: margin, Hi: hi}
}

// Contains 是否在范围内 (含端点)
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lo && v <= b.Hi
}

func (b Bounds) draw(rng Source) float64 {
	return b.Lo + rng.Float64()*(b.Hi-b.Lo)
}

func randomPosition(canvas Size, m Margins, rng Source) Point {
	return Point{
		X: AxisBounds(canvas.Width, m.Horizontal).draw(rng),
		Y: AxisBounds(canvas.Height, m.Vertical).draw(rng),
	}
}

// InitializeLayout 为每个标签生成一个随机位置和动画时长，不做碰撞检测
func InitializeLayout(labels []string, canvas Size, m Margins, rng Source) []State {
	seen := make(map[string]bool, len(labels))
	out := make([]State, 0, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, State{
			ID:       newID(rng),
			Label:    label,
			Position: randomPosition(canvas, m, rng),
			Duration: MinDuration + rng.Float64()*(MaxDuration-MinDuration),
		})
	}
	return out
}

// Reshuffle 重新生成每个气泡的位置，ID 和时长不变
func Reshuffle(current []State, canvas Size, m Margins, rng Source) []State {
	out := make([]State, len(current))
	for i, s := range current {
		s.Position = randomPosition(canvas, m, rng)
		out[i] = s
	}
	return out
}

func newID(rng Source) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
