package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// 客户端消息类型
const (
	// MsgPointerMove 指针移动（屏幕坐标）
	MsgPointerMove = "pointer_move"
	// MsgPointerDown 左键按下，点地移动（屏幕坐标）
	MsgPointerDown = "pointer_down"
	// MsgKeyPress 按键，释放绑定技能
	MsgKeyPress = "key_press"
	// MsgMoveTo 移动到已解析的地面坐标
	MsgMoveTo = "move_to"
	// MsgCastAt 向已解析的地面坐标释放技能
	MsgCastAt = "cast_at"
)

// 服务端消息类型
const (
	// MsgWelcome 连接建立
	MsgWelcome = "welcome"
	// MsgFrame 游戏帧
	MsgFrame = "frame"
)

// ClientMessage 客户端输入消息，始终为JSON
type ClientMessage struct {
	Type    string           `json:"type"`
	X       float64          `json:"x,omitempty"`
	Y       float64          `json:"y,omitempty"`
	Width   int              `json:"width,omitempty"`  // 视口宽度(像素)
	Height  int              `json:"height,omitempty"` // 视口高度(像素)
	Key     string           `json:"key,omitempty"`
	Ability models.AbilityID `json:"ability,omitempty"`
	Point   *models.Vector3  `json:"point,omitempty"`
}

// Welcome 连接建立后下发的会话信息
type Welcome struct {
	Type    string               `json:"type"`
	Session models.PlayerSession `json:"session"`
}

// GameFrame 游戏帧
type GameFrame struct {
	Type     string               `json:"type"`
	FrameID  int64                `json:"frame_id"`
	Snapshot models.WorldSnapshot `json:"snapshot"`
	Events   []models.CombatEvent `json:"events,omitempty"`
}

// NewWelcome 创建会话消息
func NewWelcome(session models.PlayerSession) *Welcome {
	return &Welcome{Type: MsgWelcome, Session: session}
}

// NewFrame 创建游戏帧
func NewFrame(frameID int64, snapshot models.WorldSnapshot, events []models.CombatEvent) *GameFrame {
	return &GameFrame{
		Type:     MsgFrame,
		FrameID:  frameID,
		Snapshot: snapshot,
		Events:   events,
	}
}

// DecodeClientMessage 解析客户端JSON消息
func DecodeClientMessage(data []byte, msg *ClientMessage) error {
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("解析客户端消息失败: %w", err)
	}
	if msg.Type == "" {
		return fmt.Errorf("客户端消息缺少 type")
	}
	return nil
}
