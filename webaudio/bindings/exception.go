package bindings

import (
	"errors"

	"github.com/dop251/goja"

	"github.com/cwbudde/algo-audioparam/webaudio/automation"
	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

// exceptionCodes are the legacy DOMException codes by name.
var exceptionCodes = map[string]int{
	"IndexSizeError":           1,
	"NotFoundError":            8,
	"NotSupportedError":        9,
	"InvalidStateError":        11,
	"SyntaxError":              12,
	"InvalidModificationError": 13,
	"InvalidAccessError":       15,
	"TypeMismatchError":        17,
}

var exceptionConstants = map[string]string{
	"INDEX_SIZE_ERR":           "IndexSizeError",
	"NOT_FOUND_ERR":            "NotFoundError",
	"NOT_SUPPORTED_ERR":        "NotSupportedError",
	"INVALID_STATE_ERR":        "InvalidStateError",
	"SYNTAX_ERR":               "SyntaxError",
	"INVALID_MODIFICATION_ERR": "InvalidModificationError",
	"INVALID_ACCESS_ERR":       "InvalidAccessError",
	"TYPE_MISMATCH_ERR":        "TypeMismatchError",
}

func (b *Binder) setupDOMException() {
	vm := b.vm

	proto := vm.NewObject()
	errorProto := vm.Get("Error").ToObject(vm).Get("prototype").ToObject(vm)
	_ = proto.SetPrototype(errorProto)

	ctor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		message, name := "", "Error"
		if len(call.Arguments) > 0 {
			message = call.Arguments[0].String()
		}
		if len(call.Arguments) > 1 {
			name = call.Arguments[1].String()
		}
		exc := call.This
		_ = exc.Set("message", message)
		_ = exc.Set("name", name)
		_ = exc.Set("code", exceptionCodes[name])
		return exc
	}).ToObject(vm)

	_ = ctor.Set("prototype", proto)
	_ = proto.Set("constructor", ctor)
	for constant, name := range exceptionConstants {
		_ = ctor.Set(constant, exceptionCodes[name])
	}

	_ = vm.Set("DOMException", ctor)
	b.domException = ctor
}

// throwDOMException raises a DOMException in the running script.
func (b *Binder) throwDOMException(name, message string) {
	exc, err := b.vm.New(b.domException, b.vm.ToValue(message), b.vm.ToValue(name))
	if err != nil {
		panic(b.vm.NewGoError(err))
	}
	panic(exc)
}

// throwRangeError raises a native RangeError in the running script.
func (b *Binder) throwRangeError(message string) {
	exc, err := b.vm.New(b.vm.Get("RangeError"), b.vm.ToValue(message))
	if err != nil {
		panic(b.vm.NewGoError(err))
	}
	panic(exc)
}

// throw converts a scheduling error into the exception a browser raises for
// the same condition.
func (b *Binder) throw(method string, err error) {
	msg := "Failed to execute '" + method + "' on 'AudioParam': " + err.Error()

	switch {
	case errors.Is(err, automation.ErrInvalidValue):
		panic(b.vm.NewTypeError(msg))
	case errors.Is(err, automation.ErrInvalidTime),
		errors.Is(err, automation.ErrInvalidExponentialTarget):
		b.throwRangeError(msg)
	case errors.Is(err, automation.ErrOverlap):
		b.throwDOMException("NotSupportedError", msg)
	case errors.Is(err, param.ErrInvalidState):
		b.throwDOMException("InvalidStateError", msg)
	default:
		panic(b.vm.NewGoError(err))
	}
}
