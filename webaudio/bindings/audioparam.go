package bindings

import (
	"github.com/dop251/goja"

	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

// BindParam returns a JavaScript AudioParam object backed by p.
func (b *Binder) BindParam(p *param.Param) *goja.Object {
	vm := b.vm

	obj := vm.NewObject()
	_ = obj.SetPrototype(b.paramProto)

	_ = obj.DefineAccessorProperty("value", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(float64(p.Value()))
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if err := p.SetValue(float32(call.Argument(0).ToFloat())); err != nil {
			b.throw("value", err)
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	_ = obj.DefineAccessorProperty("automationRate", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(p.AutomationRate().String())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		// Unknown enum strings are ignored, as for any IDL enum attribute.
		rate, err := param.ParseAutomationRate(call.Argument(0).String())
		if err != nil {
			return goja.Undefined()
		}
		if err := p.SetAutomationRate(rate); err != nil {
			b.throw("automationRate", err)
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	b.readOnly(obj, "defaultValue", func() float32 { return p.DefaultValue() })
	b.readOnly(obj, "minValue", func() float32 { return p.MinValue() })
	b.readOnly(obj, "maxValue", func() float32 { return p.MaxValue() })

	b.method(obj, "setValueAtTime", 2, func(call goja.FunctionCall) error {
		_, err := p.SetValueAtTime(float32Arg(call, 0), call.Argument(1).ToFloat())
		return err
	})
	b.method(obj, "linearRampToValueAtTime", 2, func(call goja.FunctionCall) error {
		_, err := p.LinearRampToValueAtTime(float32Arg(call, 0), call.Argument(1).ToFloat())
		return err
	})
	b.method(obj, "exponentialRampToValueAtTime", 2, func(call goja.FunctionCall) error {
		_, err := p.ExponentialRampToValueAtTime(float32Arg(call, 0), call.Argument(1).ToFloat())
		return err
	})
	b.method(obj, "setTargetAtTime", 3, func(call goja.FunctionCall) error {
		_, err := p.SetTargetAtTime(float32Arg(call, 0), call.Argument(1).ToFloat(), float32Arg(call, 2))
		return err
	})
	b.method(obj, "setValueCurveAtTime", 3, func(call goja.FunctionCall) error {
		var values []float32
		if err := vm.ExportTo(call.Argument(0), &values); err != nil {
			panic(vm.NewTypeError("Failed to execute 'setValueCurveAtTime' on 'AudioParam': values is not a sequence of numbers"))
		}
		_, err := p.SetValueCurveAtTime(values, call.Argument(1).ToFloat(), call.Argument(2).ToFloat())
		return err
	})
	b.method(obj, "cancelScheduledValues", 1, func(call goja.FunctionCall) error {
		_, err := p.CancelScheduledValues(call.Argument(0).ToFloat())
		return err
	})
	b.method(obj, "cancelAndHoldAtTime", 1, func(call goja.FunctionCall) error {
		_, err := p.CancelAndHoldAtTime(call.Argument(0).ToFloat())
		return err
	})

	return obj
}

func (b *Binder) readOnly(obj *goja.Object, name string, get func() float32) {
	_ = obj.DefineAccessorProperty(name, b.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.vm.ToValue(float64(get()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// method installs a scheduling method that returns the receiver so calls
// can be chained.
func (b *Binder) method(obj *goja.Object, name string, required int, fn func(goja.FunctionCall) error) {
	_ = obj.Set(name, func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < required {
			panic(b.vm.NewTypeError("Failed to execute '%s' on 'AudioParam': %d arguments required, but only %d present",
				name, required, len(call.Arguments)))
		}
		if err := fn(call); err != nil {
			b.throw(name, err)
		}
		return call.This
	})
}

func float32Arg(call goja.FunctionCall, i int) float32 {
	return float32(call.Argument(i).ToFloat())
}
