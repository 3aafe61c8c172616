package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec 服务端消息编码器
type Codec interface {
	Name() string
	// Binary 为 true 时以二进制帧发送
	Binary() bool
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// NewCodec 按名称创建编码器
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	case "protobuf":
		return ProtobufCodec{}, nil
	default:
		return nil, fmt.Errorf("未知的编码格式: %s", name)
	}
}

// JSONCodec JSON编码
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MsgpackCodec MessagePack编码，沿用json标签作为字段名
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }
func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack编码失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("msgpack解码失败: %w", err)
	}
	return nil
}

// ProtobufCodec 以 google.protobuf.Struct 承载消息的二进制编码
type ProtobufCodec struct{}

func (ProtobufCodec) Name() string { return "protobuf" }
func (ProtobufCodec) Binary() bool { return true }

func (ProtobufCodec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("消息必须是JSON对象: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("构建protobuf结构失败: %w", err)
	}
	return proto.Marshal(st)
}

func (ProtobufCodec) Decode(data []byte, v any) error {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("protobuf解码失败: %w", err)
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
