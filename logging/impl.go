package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// callerSkip reaches the caller of a Logger method from callerOf: callerOf, write, the method.
const callerSkip = 3

var errUnpairedKey = errors.New("unpaired log key")

type impl struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	fields    []zapcore.Field
	appenders []Appender
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) With(keysAndValues ...interface{}) Logger {
	child := *imp
	child.fields = appendPairs(append([]zapcore.Field{}, imp.fields...), keysAndValues)
	child.appenders = append([]Appender{}, imp.appenders...)
	return &child
}

func (imp *impl) enabled(level Level) bool {
	return GlobalLogLevel.Enabled(zapcore.DebugLevel) || level >= imp.level.Get()
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	if imp.enabled(DEBUG) {
		imp.write(DEBUG, msg, nil, keysAndValues)
	}
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	if imp.enabled(DEBUG) || isTraced(ctx) {
		imp.write(DEBUG, msg, connectionFields(ctx), keysAndValues)
	}
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	if imp.enabled(INFO) {
		imp.write(INFO, msg, nil, keysAndValues)
	}
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	if imp.enabled(ERROR) {
		imp.write(ERROR, msg, nil, keysAndValues)
	}
}

// write sends one entry to every appender. Fields are ordered: logger fields, context fields, then
// the call's own pairs.
func (imp *impl) write(level Level, msg string, contextFields []zapcore.Field, keysAndValues []interface{}) {
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: imp.name,
		Message:    msg,
		Caller:     callerOf(callerSkip),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	fields := make([]zapcore.Field, 0, len(imp.fields)+len(contextFields)+len(keysAndValues)/2+1)
	fields = append(fields, imp.fields...)
	fields = append(fields, contextFields...)
	fields = appendPairs(fields, keysAndValues)
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// appendPairs turns alternating keys and values into fields. A trailing key without a value is kept
// with errUnpairedKey as its value.
func appendPairs(fields []zapcore.Field, keysAndValues []interface{}) []zapcore.Field {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			return append(fields, zap.Any(key, errUnpairedKey))
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func callerOf(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip)
	return zapcore.NewEntryCaller(pc, file, line, ok)
}
