// config.go

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务器配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// ServerConfig 服务器基本配置
type ServerConfig struct {
	GamePort      int    `mapstructure:"game_port"`
	Debug         bool   `mapstructure:"debug"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	TickRate      int    `mapstructure:"tick_rate"`      // 每秒模拟帧数
	MaxRoomCount  int    `mapstructure:"max_room_count"` // 同时存在的最大房间数
	SnapshotCodec string `mapstructure:"snapshot_codec"` // json, msgpack, protobuf
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 连接认证配置
type AuthConfig struct {
	Required  bool          `mapstructure:"required"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// SimulationConfig 模拟参数
type SimulationConfig struct {
	Seed        int64             `mapstructure:"seed"` // 0 表示使用当前时间
	Player      PlayerConfig      `mapstructure:"player"`
	Bolt        ProjectileConfig  `mapstructure:"bolt"`
	Pulse       ProjectileConfig  `mapstructure:"pulse"`
	Skeleton    SkeletonConfig    `mapstructure:"skeleton"`
	Floor       FloorConfig       `mapstructure:"floor"`
	Camera      CameraConfig      `mapstructure:"camera"`
	KeyBindings map[string]string `mapstructure:"key_bindings"` // 按键 -> 技能ID
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	Speed          float64 `mapstructure:"speed"` // 单位/秒
	GroundHeight   float64 `mapstructure:"ground_height"`
	ArrivalEpsilon float64 `mapstructure:"arrival_epsilon"`
}

// ProjectileConfig 投射物技能参数
type ProjectileConfig struct {
	Cooldown          time.Duration `mapstructure:"cooldown"`
	Damage            float64       `mapstructure:"damage"`
	Speed             float64       `mapstructure:"speed"` // 单位/秒
	Lifespan          time.Duration `mapstructure:"lifespan"`
	FlightHeight      float64       `mapstructure:"flight_height"`
	Radius            float64       `mapstructure:"radius"` // 火球为命中半径，脉冲为管道半径
	FreezeDuration    time.Duration `mapstructure:"freeze_duration"`
	ExplosionDuration time.Duration `mapstructure:"explosion_duration"`
}

// Point3 三维坐标
type Point3 struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

// SkeletonConfig 骷髅参数
type SkeletonConfig struct {
	MaxHealth       float64       `mapstructure:"max_health"`
	RespawnTime     time.Duration `mapstructure:"respawn_time"`
	GroundHeight    float64       `mapstructure:"ground_height"`
	SpawnHalfExtent float64       `mapstructure:"spawn_half_extent"` // 重生区域为以原点为中心的正方形
	Size            Point3        `mapstructure:"size"`
	SpawnPoints     []Point3      `mapstructure:"spawn_points"`
}

// FloorConfig 地面参数
type FloorConfig struct {
	Height   float64 `mapstructure:"height"`
	HalfSize float64 `mapstructure:"half_size"`
}

// CameraConfig 跟随相机参数，仅用于把屏幕坐标换算为地面坐标
type CameraConfig struct {
	FOV    float64 `mapstructure:"fov"` // 垂直视角(度)
	Near   float64 `mapstructure:"near"`
	Far    float64 `mapstructure:"far"`
	Offset Point3  `mapstructure:"offset"`
}

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig 从文件加载配置，path 为空时只使用默认值和环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PIXELSTORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default 返回内置默认配置
func Default() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("默认配置无效: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.game_port", 8081)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "text")
	v.SetDefault("server.tick_rate", 60)
	v.SetDefault("server.max_room_count", 64)
	v.SetDefault("server.snapshot_codec", "json")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "pixelstorm")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.required", false)
	v.SetDefault("auth.jwt_secret", "pixelstorm-dev-secret")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("simulation.seed", 0)

	v.SetDefault("simulation.player.speed", 5.0)
	v.SetDefault("simulation.player.ground_height", 0.5)
	v.SetDefault("simulation.player.arrival_epsilon", 0.1)

	v.SetDefault("simulation.bolt.cooldown", time.Second)
	v.SetDefault("simulation.bolt.damage", 50.0)
	v.SetDefault("simulation.bolt.speed", 5.0)
	v.SetDefault("simulation.bolt.lifespan", 1600*time.Millisecond)
	v.SetDefault("simulation.bolt.flight_height", 0.5)
	v.SetDefault("simulation.bolt.radius", 1.5)
	v.SetDefault("simulation.bolt.freeze_duration", time.Duration(0))
	v.SetDefault("simulation.bolt.explosion_duration", 300*time.Millisecond)

	v.SetDefault("simulation.pulse.cooldown", 1500*time.Millisecond)
	v.SetDefault("simulation.pulse.damage", 30.0)
	v.SetDefault("simulation.pulse.speed", 9.0)
	v.SetDefault("simulation.pulse.lifespan", 3*time.Second)
	v.SetDefault("simulation.pulse.flight_height", 0.1)
	v.SetDefault("simulation.pulse.radius", 0.2)
	v.SetDefault("simulation.pulse.freeze_duration", time.Second)
	v.SetDefault("simulation.pulse.explosion_duration", time.Duration(0))

	v.SetDefault("simulation.skeleton.max_health", 100.0)
	v.SetDefault("simulation.skeleton.respawn_time", 5*time.Second)
	v.SetDefault("simulation.skeleton.ground_height", 1.0)
	v.SetDefault("simulation.skeleton.spawn_half_extent", 10.0)
	v.SetDefault("simulation.skeleton.size", map[string]any{"x": 1.0, "y": 2.0, "z": 1.0})
	v.SetDefault("simulation.skeleton.spawn_points", []map[string]any{
		{"x": 5.0, "y": 1.0, "z": 5.0},
		{"x": -5.0, "y": 1.0, "z": -5.0},
	})

	v.SetDefault("simulation.floor.height", 0.0)
	v.SetDefault("simulation.floor.half_size", 20.0)

	v.SetDefault("simulation.camera.fov", 90.0)
	v.SetDefault("simulation.camera.near", 0.1)
	v.SetDefault("simulation.camera.far", 100.0)
	v.SetDefault("simulation.camera.offset", map[string]any{"x": 4.0, "y": 10.0, "z": 4.0})

	v.SetDefault("simulation.key_bindings", map[string]string{
		"q": "bolt",
		"e": "pulse",
	})
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("%w: server.tick_rate 必须为正数", ErrInvalidConfig)
	}
	switch c.Server.SnapshotCodec {
	case "json", "msgpack", "protobuf":
	default:
		return fmt.Errorf("%w: 未知的快照编码 %q", ErrInvalidConfig, c.Server.SnapshotCodec)
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: 启用认证时必须配置 auth.jwt_secret", ErrInvalidConfig)
	}
	return c.Simulation.Validate()
}

// Validate 校验模拟参数
func (s *SimulationConfig) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"player.speed", s.Player.Speed},
		{"player.arrival_epsilon", s.Player.ArrivalEpsilon},
		{"bolt.damage", s.Bolt.Damage},
		{"bolt.speed", s.Bolt.Speed},
		{"bolt.radius", s.Bolt.Radius},
		{"pulse.damage", s.Pulse.Damage},
		{"pulse.speed", s.Pulse.Speed},
		{"pulse.radius", s.Pulse.Radius},
		{"skeleton.max_health", s.Skeleton.MaxHealth},
		{"skeleton.spawn_half_extent", s.Skeleton.SpawnHalfExtent},
		{"floor.half_size", s.Floor.HalfSize},
		{"camera.fov", s.Camera.FOV},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value <= 0 {
			return fmt.Errorf("%w: simulation.%s 必须为有限正数, 实际为 %v", ErrInvalidConfig, c.name, c.value)
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"bolt.cooldown", s.Bolt.Cooldown},
		{"bolt.lifespan", s.Bolt.Lifespan},
		{"pulse.cooldown", s.Pulse.Cooldown},
		{"pulse.lifespan", s.Pulse.Lifespan},
		{"skeleton.respawn_time", s.Skeleton.RespawnTime},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: simulation.%s 必须为正数", ErrInvalidConfig, d.name)
		}
	}

	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("%w: simulation.camera 近远裁剪面无效", ErrInvalidConfig)
	}
	for key, ability := range s.KeyBindings {
		if ability != "bolt" && ability != "pulse" {
			return fmt.Errorf("%w: 按键 %q 绑定了未知技能 %q", ErrInvalidConfig, key, ability)
		}
	}
	return nil
}

// GetDSN 获取PostgreSQL连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetRedisAddr 获取Redis连接地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
