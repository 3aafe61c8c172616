package game

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/protocol"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/logger"
)

const (
	// 输入队列长度
	inputQueueSize = 256

	// 事件记录队列长度
	recordQueueSize = 64

	// 单批事件记录超时
	recordTimeout = 2 * time.Second

	// 空房间保留时间
	idleRoomTTL = 5 * time.Minute

	// 已结束房间保留时间
	endedRoomTTL = 2 * time.Minute
)

// InputKind 输入类型
type InputKind int

const (
	// InputPointerMove 指针移动
	InputPointerMove InputKind = iota
	// InputPointerDown 点地移动
	InputPointerDown
	// InputKeyPress 按键施法
	InputKeyPress
	// InputMoveTo 移动到地面坐标
	InputMoveTo
	// InputCastAt 向地面坐标施法
	InputCastAt
)

// Input 玩家输入，由连接协程提交，在房间主循环中应用
type Input struct {
	Kind    InputKind
	X       float64
	Y       float64
	Width   int
	Height  int
	Key     string
	Ability models.AbilityID
	Point   mgl64.Vec3
}

// Room 游戏房间
// 房间主循环是世界的唯一修改者，其他协程只通过输入队列与之交互
type Room struct {
	ID        string
	CreatedAt time.Time

	world     *World
	clock     *TickerClock
	targeting *CameraTargeting
	tickRate  int
	codec     protocol.Codec
	recorder  EventRecorder

	inputs  chan Input
	records chan []models.CombatEvent

	// 连接管理
	mu           sync.RWMutex
	status       models.RoomStatus
	endedAt      time.Time
	conns        map[string]*PlayerConnection
	controllerID string
	lastActivity time.Time

	frameID   atomic.Int64
	isRunning atomic.Bool
	shutdown  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	log       *logrus.Entry
}

// NewRoom 创建新房间
func NewRoom(cfg *config.Config, codec protocol.Codec, recorder EventRecorder, log *logrus.Entry) *Room {
	return newRoom(cfg, codec, recorder, log, NewTickerClock())
}

func newRoom(cfg *config.Config, codec protocol.Codec, recorder EventRecorder, log *logrus.Entry, clock *TickerClock) *Room {
	roomID := uuid.New().String()
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if codec == nil {
		codec = protocol.JSONCodec{}
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithField("room", roomID)

	sim := NewSimContext(clock, cfg.Simulation, log)
	targeting := NewCameraTargeting(cfg.Simulation.Camera, cfg.Simulation.Floor, nil)
	world := NewWorld(sim, targeting)
	targeting.SetFocus(world.Player)

	now := time.Now()
	return &Room{
		ID:           roomID,
		CreatedAt:    now,
		world:        world,
		clock:        clock,
		targeting:    targeting,
		tickRate:     cfg.Server.TickRate,
		codec:        codec,
		recorder:     recorder,
		inputs:       make(chan Input, inputQueueSize),
		records:      make(chan []models.CombatEvent, recordQueueSize),
		status:       models.RoomPlaying,
		conns:        make(map[string]*PlayerConnection),
		lastActivity: now,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
		log:          log,
	}
}

// Start 启动房间
func (r *Room) Start(ctx context.Context) error {
	if !r.isRunning.CompareAndSwap(false, true) {
		return fmt.Errorf("房间已经在运行")
	}

	r.log.WithField("tick_rate", r.tickRate).Info("房间启动")

	go r.recordLoop(ctx)
	go r.gameLoop(ctx)
	return nil
}

// Stop 停止房间并关闭所有连接，可重复调用
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.shutdown)

		r.mu.Lock()
		r.status = models.RoomEnded
		r.endedAt = time.Now()
		// 关闭后读写协程退出并自行从房间移除
		for _, pc := range r.conns {
			pc.close()
		}
		r.mu.Unlock()

		r.log.Info("房间已停止")
	})
}

// Done 主循环退出后关闭
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Status 房间状态
func (r *Room) Status() models.RoomStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Submit 提交输入，队列已满或房间已停止时丢弃
func (r *Room) Submit(in Input) bool {
	select {
	case <-r.shutdown:
		return false
	default:
	}

	select {
	case r.inputs <- in:
		r.touch()
		return true
	default:
		r.log.Warn("输入队列已满，丢弃输入")
		return false
	}
}

// AddConnection 添加连接并下发欢迎消息，第一个连接成为控制者，其余为观战者
func (r *Room) AddConnection(pc *PlayerConnection) models.ConnectionRole {
	r.mu.Lock()
	defer r.mu.Unlock()

	role := models.RoleSpectator
	if r.controllerID == "" {
		role = models.RoleController
		r.controllerID = pc.ID
	}
	pc.Role = role
	pc.Room = r

	// 欢迎消息先于任何游戏帧入队
	welcome, err := r.codec.Encode(protocol.NewWelcome(models.PlayerSession{
		Subject:      pc.Subject,
		ConnectionID: pc.ID,
		RoomID:       r.ID,
		Role:         role,
	}))
	if err != nil {
		r.log.WithError(err).Error("编码欢迎消息失败")
	} else {
		pc.enqueue(welcome)
	}

	r.conns[pc.ID] = pc
	r.lastActivity = time.Now()

	r.log.WithFields(logrus.Fields{
		"connection": pc.ID,
		"subject":    pc.Subject,
		"role":       role,
	}).Info("连接加入房间")
	return role
}

// RemoveConnection 移除连接，控制者离开后由下一个加入的连接接管
func (r *Room) RemoveConnection(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[connID]; !ok {
		return
	}
	delete(r.conns, connID)
	if r.controllerID == connID {
		r.controllerID = ""
	}
	r.lastActivity = time.Now()

	r.log.WithField("connection", connID).Info("连接离开房间")
	if len(r.conns) == 0 {
		r.log.Info("房间已空，等待清理")
	}
}

// ConnectionCount 连接数量
func (r *Room) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Info 房间信息
func (r *Room) Info() models.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.RoomInfo{
		ID:          r.ID,
		Status:      r.status,
		CreatedAt:   r.CreatedAt,
		Connections: len(r.conns),
		FrameID:     r.frameID.Load(),
	}
}

// ShouldCleanup 检查房间是否应该被清理
func (r *Room) ShouldCleanup() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.status == models.RoomEnded {
		return time.Since(r.endedAt) > endedRoomTTL
	}
	if len(r.conns) == 0 {
		return time.Since(r.lastActivity) > idleRoomTTL
	}
	return false
}

func (r *Room) touch() {
	r.mu.Lock()
	r.lastActivity = time.Now()
	r.mu.Unlock()
}

// gameLoop 游戏主循环
func (r *Room) gameLoop(ctx context.Context) {
	defer close(r.done)
	defer close(r.records)

	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer ticker.Stop()

	r.clock.Tick()
	for {
		select {
		case <-ticker.C:
			if err := r.step(); err != nil {
				r.log.WithError(err).Error("模拟出错，房间停止")
				r.Stop()
				return
			}
		case <-r.shutdown:
			return
		case <-ctx.Done():
			r.Stop()
			return
		}
	}
}

// step 推进一帧：应用输入 -> 推进时钟 -> 更新世界 -> 记录事件 -> 广播
func (r *Room) step() error {
	r.drainInputs()

	dt := r.clock.Tick()
	if err := r.world.Update(dt); err != nil {
		return err
	}

	events := r.world.DrainEvents()
	frameID := r.frameID.Add(1)

	if len(events) > 0 {
		select {
		case r.records <- events:
		default:
			r.log.WithField("events", len(events)).Warn("事件记录队列已满，丢弃")
		}
	}

	r.broadcastFrame(frameID, events)
	return nil
}

func (r *Room) drainInputs() {
	for {
		select {
		case in := <-r.inputs:
			r.applyInput(in)
		default:
			return
		}
	}
}

// applyInput 在主循环中应用一条输入
func (r *Room) applyInput(in Input) {
	switch in.Kind {
	case InputPointerMove:
		r.targeting.SetViewport(in.Width, in.Height)
		r.world.PointerMove(in.X, in.Y)
	case InputPointerDown:
		r.targeting.SetViewport(in.Width, in.Height)
		if !r.world.PointerDown(in.X, in.Y) {
			r.log.Debug("点击未命中地面")
		}
	case InputKeyPress:
		if _, outcome := r.world.KeyPress(in.Key); outcome != CastOK {
			r.log.WithFields(logrus.Fields{"key": in.Key, "outcome": outcome.String()}).Debug("按键施法未生效")
		}
	case InputMoveTo:
		r.world.Player.IssueMove(in.Point)
	case InputCastAt:
		r.world.CastAbility(in.Ability, in.Point)
	default:
		r.log.WithField("kind", in.Kind).Warn("未知输入类型")
	}
}

// broadcastFrame 广播游戏帧，发送队列已满的连接跳过本帧
func (r *Room) broadcastFrame(frameID int64, events []models.CombatEvent) {
	data, err := r.codec.Encode(protocol.NewFrame(frameID, r.world.Snapshot(), events))
	if err != nil {
		r.log.WithError(err).Error("编码游戏帧失败")
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pc := range r.conns {
		if !pc.enqueue(data) {
			r.log.WithField("connection", pc.ID).Debug("发送队列已满，跳过本帧")
		}
	}
}

// recordLoop 异步写入战斗事件，主循环退出后处理完剩余批次
func (r *Room) recordLoop(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for events := range r.records {
		rctx, cancel := context.WithTimeout(base, recordTimeout)
		if err := r.recorder.Record(rctx, r.ID, events); err != nil {
			r.log.WithError(err).Warn("记录战斗事件失败")
		}
		cancel()
	}
}
