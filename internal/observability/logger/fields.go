package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Campos de negocio.

func ActorID(v string) zap.Field   { return zap.String("actor_id", v) }
func Role(v string) zap.Field      { return zap.String("role", v) }
func ProductID(v string) zap.Field { return zap.String("product_id", v) }
func OrderID(v string) zap.Field   { return zap.String("order_id", v) }
func CouponID(v string) zap.Field  { return zap.String("coupon_id", v) }
func Email(v string) zap.Field     { return zap.String("email", v) }

// Campos de sistema.

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
func Count(v int) zap.Field        { return zap.Int("count", v) }
func ID(v string) zap.Field        { return zap.String("id", v) }
func Key(v string) zap.Field       { return zap.String("key", v) }

func String(key, v string) zap.Field  { return zap.String(key, v) }
func Int(key string, v int) zap.Field { return zap.Int(key, v) }
