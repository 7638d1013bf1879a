// Package zap adapts a *zap.Logger to cache.Logger.
package zap

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/ttlcache/cache"
)

var _ cache.Logger = ZapLogger{}

// ZapLogger forwards cache events to L. Fields are emitted in key order.
type ZapLogger struct{ L *zap.Logger }

// New names the logger "ttlcache" so cache events are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("ttlcache")} }

func (z ZapLogger) Debug(msg string, f cache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f cache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f cache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f cache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f cache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		v := f[k]
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
