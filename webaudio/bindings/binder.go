package bindings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

// Binder installs the AudioParam interface into a goja runtime.
// A Binder is not safe for concurrent use, nor is the runtime it wraps.
type Binder struct {
	vm     *goja.Runtime
	logger *zap.Logger

	paramProto   *goja.Object
	domException *goja.Object
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger routes console output and script failures to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New installs the AudioParam and DOMException constructors and a console
// object into vm.
func New(vm *goja.Runtime, opts ...Option) *Binder {
	b := &Binder{vm: vm, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.logger = b.logger.Named("bindings")

	b.setupDOMException()
	b.setupAudioParam()
	b.setupConsole()
	return b
}

// Runtime returns the wrapped runtime.
func (b *Binder) Runtime() *goja.Runtime { return b.vm }

// Define binds p and stores it in the global variable name.
func (b *Binder) Define(name string, p *param.Param) error {
	return b.vm.Set(name, b.BindParam(p))
}

// Run evaluates src. An uncaught script exception is returned as an error
// whose message carries the exception text.
func (b *Binder) Run(name, src string) error {
	_, err := b.vm.RunScript(name, src)
	if err == nil {
		return nil
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		b.logger.Debug("uncaught exception", zap.String("script", name), zap.String("error", exc.Value().String()))
	}
	return fmt.Errorf("bindings: %s: %w", name, err)
}

func (b *Binder) setupAudioParam() {
	vm := b.vm

	b.paramProto = vm.NewObject()
	ctor := vm.ToValue(func(goja.ConstructorCall) *goja.Object {
		panic(vm.NewTypeError("Illegal constructor"))
	}).ToObject(vm)
	_ = ctor.Set("prototype", b.paramProto)
	_ = b.paramProto.Set("constructor", ctor)
	_ = vm.Set("AudioParam", ctor)
}

func (b *Binder) setupConsole() {
	console := b.vm.NewObject()
	logFunc := func(level zapcore.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.String()
			}
			b.logger.Log(level, "console", zap.String("message", strings.Join(args, " ")))
			return goja.Undefined()
		}
	}

	_ = console.Set("log", logFunc(zap.InfoLevel))
	_ = console.Set("info", logFunc(zap.InfoLevel))
	_ = console.Set("warn", logFunc(zap.WarnLevel))
	_ = console.Set("error", logFunc(zap.ErrorLevel))
	_ = console.Set("debug", logFunc(zap.DebugLevel))
	_ = b.vm.Set("console", console)
}
