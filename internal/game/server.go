package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/protocol"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/logger"
)

// ErrRoomLimit 房间数量达到上限
var ErrRoomLimit = errors.New("room limit reached")

const (
	// 房间清理间隔
	cleanupInterval = 10 * time.Second

	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// GameServer 游戏服务器
type GameServer struct {
	config      *config.Config
	rooms       map[string]*Room
	roomsMutex  sync.RWMutex
	connections map[string]*PlayerConnection
	connMutex   sync.RWMutex

	codec       protocol.Codec
	recorder    EventRecorder
	leaderboard LeaderboardReader
	auth        *TokenVerifier
	log         *logrus.Entry

	// 房间生命周期跟随服务器
	ctx context.Context
}

// NewGameServer 创建新的游戏服务器
func NewGameServer(cfg *config.Config, recorder EventRecorder, log *logrus.Entry) (*GameServer, error) {
	codec, err := protocol.NewCodec(cfg.Server.SnapshotCodec)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &GameServer{
		config:      cfg,
		rooms:       make(map[string]*Room),
		connections: make(map[string]*PlayerConnection),
		codec:       codec,
		recorder:    recorder,
		auth:        NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Required),
		log:         log.WithField("component", "server"),
		ctx:         context.Background(),
	}, nil
}

// Auth 令牌校验器
func (s *GameServer) Auth() *TokenVerifier {
	return s.auth
}

// SetLeaderboard 启用排行榜查询，需在 Run 之前调用
func (s *GameServer) SetLeaderboard(lb LeaderboardReader) {
	s.leaderboard = lb
}

// Run 启动HTTP服务和房间管理，ctx 取消后优雅关闭
func (s *GameServer) Run(ctx context.Context) error {
	s.ctx = ctx

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.GamePort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.WithField("port", s.config.Server.GamePort).Info("游戏服务器启动")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP服务器错误: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.roomManager(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.stopAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP服务器关闭错误: %w", err)
		}
		s.log.Info("游戏服务器已停止")
		return nil
	})

	return g.Wait()
}

// Handler 创建HTTP处理器
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket 连接端点
	mux.HandleFunc("/ws", s.handleWSConnection)

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 房间列表
	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.ListRooms()); err != nil {
			s.log.WithError(err).Warn("写入房间列表失败")
		}
	})

	// 击杀排行榜
	mux.HandleFunc("/leaderboard", s.handleLeaderboard)

	return mux
}

// handleLeaderboard 查询击杀排行榜，可选参数 limit 和 room_id
func (s *GameServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.leaderboard == nil {
		http.Error(w, "排行榜未启用", http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()
	limit := defaultLeaderboardLimit
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit 参数无效", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	ctx := r.Context()
	entries, err := s.leaderboard.GetLeaderboard(ctx, limit)
	if err != nil {
		s.log.WithError(err).Warn("查询排行榜失败")
		http.Error(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}
	abilityKills, err := s.leaderboard.GetAbilityKills(ctx)
	if err != nil {
		s.log.WithError(err).Warn("查询技能击杀统计失败")
		http.Error(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}

	view := models.LeaderboardView{Entries: entries, AbilityKills: abilityKills}
	if roomID := query.Get("room_id"); roomID != "" {
		rank, err := s.leaderboard.GetRoomRank(ctx, roomID)
		if err != nil {
			s.log.WithError(err).WithField("room", roomID).Warn("查询房间排名失败")
			http.Error(w, "查询排行榜失败", http.StatusInternalServerError)
			return
		}
		view.RoomRank = &rank
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.log.WithError(err).Warn("写入排行榜失败")
	}
}

// stopAll 关闭所有房间和连接
func (s *GameServer) stopAll() {
	s.roomsMutex.Lock()
	for _, room := range s.rooms {
		room.Stop()
	}
	s.roomsMutex.Unlock()

	s.connMutex.Lock()
	for _, pc := range s.connections {
		pc.close()
	}
	s.connMutex.Unlock()
}

// roomManager 房间管理器
func (s *GameServer) roomManager(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupRooms()
		case <-ctx.Done():
			return
		}
	}
}

// cleanupRooms 清理空闲房间
func (s *GameServer) cleanupRooms() {
	s.roomsMutex.Lock()
	defer s.roomsMutex.Unlock()

	for id, room := range s.rooms {
		if room.ShouldCleanup() {
			s.log.WithField("room", id).Info("清理空闲房间")
			room.Stop()
			delete(s.rooms, id)
		}
	}
}

// CreateRoom 创建并启动游戏房间
func (s *GameServer) CreateRoom() (*Room, error) {
	s.roomsMutex.Lock()
	defer s.roomsMutex.Unlock()

	if limit := s.config.Server.MaxRoomCount; limit > 0 && len(s.rooms) >= limit {
		return nil, fmt.Errorf("%w: %d", ErrRoomLimit, limit)
	}

	room := NewRoom(s.config, s.codec, s.recorder, s.log)
	if err := room.Start(s.ctx); err != nil {
		return nil, err
	}
	s.rooms[room.ID] = room

	s.log.WithField("room", room.ID).Info("创建房间")
	return room, nil
}

// GetRoom 获取房间
func (s *GameServer) GetRoom(roomID string) (*Room, bool) {
	s.roomsMutex.RLock()
	defer s.roomsMutex.RUnlock()

	room, exists := s.rooms[roomID]
	return room, exists
}

// ListRooms 列出所有房间（按创建时间排序）
func (s *GameServer) ListRooms() []models.RoomInfo {
	s.roomsMutex.RLock()
	infos := make([]models.RoomInfo, 0, len(s.rooms))
	for _, room := range s.rooms {
		infos = append(infos, room.Info())
	}
	s.roomsMutex.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}
