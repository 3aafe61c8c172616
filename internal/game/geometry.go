package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minAimLength 瞄准方向的最小水平长度，低于该值视为无效
const minAimLength = 1e-6

// AABB 轴对齐包围盒
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAround 以中心点和半尺寸构造包围盒
func BoxAround(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// emptyAABB 空包围盒，用于逐点扩展
func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// ExpandByPoint 扩展包围盒以包含点 p
func (b *AABB) ExpandByPoint(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// ExpandByScalar 各方向扩展 r
func (b *AABB) ExpandByScalar(r float64) {
	d := mgl64.Vec3{r, r, r}
	b.Min = b.Min.Sub(d)
	b.Max = b.Max.Add(d)
}

// Intersects 判断两个包围盒是否相交（接触也算相交）
func (b AABB) Intersects(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || b.Min[i] > o.Max[i] {
			return false
		}
	}
	return true
}

// flatten 投影到水平面
func flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v.X()) && finite(v.Y()) && finite(v.Z())
}
