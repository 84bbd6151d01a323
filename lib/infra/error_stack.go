package infra

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ErrorStack is an error carrying the call stack frames captured where
// it was created or wrapped. It renders the frames as structured zap
// fields through zapcore.ObjectMarshaler, so a logger can inline them
// as JSON instead of zap's plain text stacktrace string.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Unwrap() error
	Frames() []Frame
}

var _ ErrorStack = (*errorStack)(nil)

type errorStack struct {
	cause  error
	msg    string
	frames []Frame
}

func (es *errorStack) Error() string {
	if es.cause == nil {
		return es.msg
	}
	if len(es.msg) == 0 {
		return es.cause.Error()
	}
	return es.msg + ": " + es.cause.Error()
}

func (es *errorStack) Unwrap() error {
	return es.cause
}

func (es *errorStack) Frames() []Frame {
	return es.frames
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	return enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, frame := range es.frames {
			arr.AppendString(fmt.Sprintf("%+v", frame))
		}
		return nil
	}))
}

const maxErrorStackDepth = 32

func callers(skip int) []Frame {
	var pcs [maxErrorStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		name := Frame(pcs[i]).name()
		// Frames inside the Go runtime carry no diagnostic value.
		if strings.HasPrefix(name, "runtime.") {
			continue
		}
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

func NewErrorStack(msg string) error {
	return &errorStack{
		msg:    msg,
		frames: callers(3),
	}
}

// WrapErrorStack attaches the current call stack to err. An err that
// already carries a stack keeps its original frames. A nil err stays
// nil.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	if es, ok := err.(ErrorStack); ok {
		return es
	}
	return &errorStack{
		cause:  err,
		frames: callers(3),
	}
}

func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		if len(msg) == 0 {
			return nil
		}
		return &errorStack{
			msg:    msg,
			frames: callers(3),
		}
	}
	return &errorStack{
		cause:  err,
		msg:    msg,
		frames: callers(3),
	}
}
