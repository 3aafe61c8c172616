package game

import (
	"math"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// FocusProvider 相机跟随目标
type FocusProvider interface {
	FocusPoint() mgl64.Vec3
}

// CameraTargeting 跟随相机的地面拾取
// 相机位于目标点加偏移处并注视目标，屏幕射线与地面相交得到地面坐标
type CameraTargeting struct {
	mu     sync.RWMutex
	camera config.CameraConfig
	floor  config.FloorConfig
	focus  FocusProvider
	width  int
	height int
}

// NewCameraTargeting 创建地面拾取器
func NewCameraTargeting(camera config.CameraConfig, floor config.FloorConfig, focus FocusProvider) *CameraTargeting {
	return &CameraTargeting{camera: camera, floor: floor, focus: focus}
}

// SetFocus 设置跟随目标
func (c *CameraTargeting) SetFocus(focus FocusProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focus = focus
}

// SetViewport 设置视口尺寸(像素)
func (c *CameraTargeting) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

// Viewport 当前视口尺寸
func (c *CameraTargeting) Viewport() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// CastToGround 屏幕坐标（左上角为原点）换算为地面坐标
func (c *CameraTargeting) CastToGround(screenX, screenY float64) (mgl64.Vec3, bool) {
	c.mu.RLock()
	focus, w, h := c.focus, c.width, c.height
	c.mu.RUnlock()

	if focus == nil || w <= 0 || h <= 0 || !finite(screenX) || !finite(screenY) {
		return mgl64.Vec3{}, false
	}

	target := focus.FocusPoint()
	off := c.camera.Offset
	eye := target.Add(mgl64.Vec3{off.X, off.Y, off.Z})
	view := mgl64.LookAtV(eye, target, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(c.camera.FOV), float64(w)/float64(h), c.camera.Near, c.camera.Far)

	winY := float64(h) - screenY
	near, err := mgl64.UnProject(mgl64.Vec3{screenX, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{screenX, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, false
	}

	dir := far.Sub(near)
	if math.Abs(dir.Y()) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := (c.floor.Height - near.Y()) / dir.Y()
	if t < 0 {
		return mgl64.Vec3{}, false
	}

	hit := near.Add(dir.Mul(t))
	hit[1] = c.floor.Height
	if math.Abs(hit.X()) > c.floor.HalfSize || math.Abs(hit.Z()) > c.floor.HalfSize {
		return mgl64.Vec3{}, false
	}
	return hit, true
}

// SetTargeting 设置地面拾取器
func (w *World) SetTargeting(t GroundTargeting) {
	w.targeting = t
}

// BindKey 绑定按键到技能
func (w *World) BindKey(key string, id models.AbilityID) {
	w.bindings[strings.ToLower(key)] = id
}

// PointerMove 记录指针位置
func (w *World) PointerMove(x, y float64) {
	w.pointerX, w.pointerY = x, y
	w.hasPointer = true
}

// PointerDown 点地移动，未命中地面时忽略
func (w *World) PointerDown(x, y float64) bool {
	w.PointerMove(x, y)
	if w.targeting == nil {
		return false
	}
	point, ok := w.targeting.CastToGround(x, y)
	if !ok {
		return false
	}
	return w.Player.IssueMove(point)
}

// KeyPress 按键释放绑定技能，目标为当前指针所指地面
func (w *World) KeyPress(key string) (*Projectile, CastOutcome) {
	id, ok := w.bindings[strings.ToLower(key)]
	if !ok {
		return nil, CastUnknownAbility
	}
	return w.CastAtPointer(id)
}

// CastAtPointer 向指针所指地面释放技能，指针未命中地面时不消耗冷却
func (w *World) CastAtPointer(id models.AbilityID) (*Projectile, CastOutcome) {
	ability, ok := w.Player.Ability(id)
	if !ok {
		return nil, CastUnknownAbility
	}
	if !ability.Ready(w.sim.Now()) {
		return nil, CastOnCooldown
	}
	if !w.hasPointer || w.targeting == nil {
		return nil, CastNoTarget
	}
	point, ok := w.targeting.CastToGround(w.pointerX, w.pointerY)
	if !ok {
		return nil, CastNoTarget
	}
	return w.CastAbility(id, point)
}
