package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	connectionKey struct{}
	traceKey      struct{}
)

// Connection names the socket and plug joints of a connect, each as "body:joint".
type Connection struct {
	Socket string
	Plug   string
}

// WithConnection returns a context carrying the connection being made.
func WithConnection(ctx context.Context, socket, plug string) context.Context {
	return context.WithValue(ctx, connectionKey{}, Connection{Socket: socket, Plug: plug})
}

// ConnectionFrom returns the connection carried by ctx, if any.
func ConnectionFrom(ctx context.Context) (Connection, bool) {
	conn, ok := ctx.Value(connectionKey{}).(Connection)
	return conn, ok
}

// TraceConnections returns a context under which CDebugw entries are written at any logger level.
func TraceConnections(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, true)
}

func isTraced(ctx context.Context) bool {
	traced, _ := ctx.Value(traceKey{}).(bool)
	return traced
}

func connectionFields(ctx context.Context) []zapcore.Field {
	conn, ok := ConnectionFrom(ctx)
	if !ok {
		return nil
	}
	return []zapcore.Field{zap.String("socket", conn.Socket), zap.String("plug", conn.Plug)}
}
