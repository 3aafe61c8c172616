// websocket.go

package game

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/protocol"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 4 * 1024

	// 发送队列长度
	sendQueueSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PlayerConnection 玩家连接
type PlayerConnection struct {
	ID      string
	Subject string
	Role    models.ConnectionRole
	Room    *Room

	// 发送队列，只由房间广播和欢迎消息写入，从不关闭
	Send chan []byte

	closed    chan struct{}
	closeOnce sync.Once
}

func newPlayerConnection(subject string) *PlayerConnection {
	return &PlayerConnection{
		ID:      uuid.New().String(),
		Subject: subject,
		Send:    make(chan []byte, sendQueueSize),
		closed:  make(chan struct{}),
	}
}

// enqueue 非阻塞写入发送队列
func (pc *PlayerConnection) enqueue(data []byte) bool {
	select {
	case <-pc.closed:
		return false
	default:
	}

	select {
	case pc.Send <- data:
		return true
	default:
		return false
	}
}

func (pc *PlayerConnection) close() {
	pc.closeOnce.Do(func() { close(pc.closed) })
}

// bearerToken 从查询参数或 Authorization 头获取令牌
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// handleWSConnection 处理WebSocket连接
// room_id 为空时创建新房间，否则加入已有房间
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	subject, err := s.auth.Verify(bearerToken(r))
	if err != nil {
		s.log.WithError(err).Warn("连接认证失败")
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	var room *Room
	if roomID := r.URL.Query().Get("room_id"); roomID != "" {
		var ok bool
		room, ok = s.GetRoom(roomID)
		if !ok || room.Status() != models.RoomPlaying {
			http.Error(w, "房间不存在", http.StatusNotFound)
			return
		}
	} else {
		room, err = s.CreateRoom()
		if err != nil {
			if errors.Is(err, ErrRoomLimit) {
				http.Error(w, "房间数量已达上限", http.StatusServiceUnavailable)
				return
			}
			s.log.WithError(err).Error("创建房间失败")
			http.Error(w, "创建房间失败", http.StatusInternalServerError)
			return
		}
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("WebSocket升级失败")
		return
	}

	pc := newPlayerConnection(subject)
	s.connMutex.Lock()
	s.connections[pc.ID] = pc
	s.connMutex.Unlock()

	role := room.AddConnection(pc)

	s.log.WithFields(logrus.Fields{
		"connection": pc.ID,
		"subject":    subject,
		"room":       room.ID,
		"role":       role,
	}).Info("玩家已连接")

	// 启动读写协程
	go s.readPump(conn, pc)
	go s.writePump(conn, pc)
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(conn *websocket.Conn, pc *PlayerConnection) {
	defer func() {
		s.closeConnection(pc)
		conn.Close()
	}()

	// 设置读取参数
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Warn("WebSocket错误")
			}
			return
		}

		s.handleMessage(pc, message)
	}
}

// writePump 向WebSocket写入数据
func (s *GameServer) writePump(conn *websocket.Conn, pc *PlayerConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	messageType := websocket.TextMessage
	if s.codec.Binary() {
		messageType = websocket.BinaryMessage
	}

	for {
		select {
		case message := <-pc.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(messageType, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-pc.closed:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// closeConnection 关闭玩家连接
func (s *GameServer) closeConnection(pc *PlayerConnection) {
	s.connMutex.Lock()
	defer s.connMutex.Unlock()

	// 检查连接是否已关闭
	if _, ok := s.connections[pc.ID]; !ok {
		return
	}

	// 如果玩家在房间中，从房间移除
	if pc.Room != nil {
		pc.Room.RemoveConnection(pc.ID)
	}

	pc.close()
	delete(s.connections, pc.ID)

	s.log.WithField("connection", pc.ID).Info("玩家已断开连接")
}

// handleMessage 处理接收到的消息，观战者的输入被忽略
func (s *GameServer) handleMessage(pc *PlayerConnection, data []byte) {
	var msg protocol.ClientMessage
	if err := protocol.DecodeClientMessage(data, &msg); err != nil {
		s.log.WithError(err).Debug("解析消息失败")
		return
	}

	if pc.Role != models.RoleController || pc.Room == nil {
		s.log.WithField("connection", pc.ID).Debug("观战者输入已忽略")
		return
	}

	in, err := inputFromMessage(msg)
	if err != nil {
		s.log.WithError(err).Debug("无效输入")
		return
	}
	pc.Room.Submit(in)
}

// inputFromMessage 把客户端消息转换为房间输入
func inputFromMessage(msg protocol.ClientMessage) (Input, error) {
	switch msg.Type {
	case protocol.MsgPointerMove:
		return Input{Kind: InputPointerMove, X: msg.X, Y: msg.Y, Width: msg.Width, Height: msg.Height}, nil
	case protocol.MsgPointerDown:
		return Input{Kind: InputPointerDown, X: msg.X, Y: msg.Y, Width: msg.Width, Height: msg.Height}, nil
	case protocol.MsgKeyPress:
		if msg.Key == "" {
			return Input{}, errors.New("key_press 缺少 key")
		}
		return Input{Kind: InputKeyPress, Key: msg.Key}, nil
	case protocol.MsgMoveTo:
		if msg.Point == nil {
			return Input{}, errors.New("move_to 缺少 point")
		}
		return Input{Kind: InputMoveTo, Point: msg.Point.Vec()}, nil
	case protocol.MsgCastAt:
		if msg.Point == nil || msg.Ability == "" {
			return Input{}, errors.New("cast_at 缺少 point 或 ability")
		}
		return Input{Kind: InputCastAt, Ability: msg.Ability, Point: msg.Point.Vec()}, nil
	default:
		return Input{}, fmt.Errorf("未知消息类型: %s", msg.Type)
	}
}
