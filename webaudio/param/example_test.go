package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-audioparam/webaudio/param"
)

func ExampleParam_LinearRampToValueAtTime() {
	gain, err := param.New(nil, param.Descriptor{Name: "gain", DefaultValue: 1, MinValue: 0, MaxValue: 10})
	if err != nil {
		panic(err)
	}

	if _, err := gain.SetValueAtTime(0, 0); err != nil {
		panic(err)
	}
	if _, err := gain.LinearRampToValueAtTime(10, 1); err != nil {
		panic(err)
	}

	fmt.Println(gain.ValueAt(0.5))
	// Output: 5
}

func ExampleParam_Process() {
	freq, err := param.New(nil, param.DefaultDescriptor("frequency", 440))
	if err != nil {
		panic(err)
	}
	if _, err := freq.SetValueCurveAtTime([]float32{100, 200, 300}, 0, 1); err != nil {
		panic(err)
	}

	block := make([]float64, 5)
	freq.Process(block, nil, 0, 4)
	fmt.Println(block)
	// Output: [100 150 200 250 300]
}

func ExampleParam_SetAutomationRate() {
	detune, err := param.New(nil, param.Descriptor{Name: "detune", Rate: param.KRate, FixedRate: true})
	if err != nil {
		panic(err)
	}

	err = detune.SetAutomationRate(param.ARate)
	fmt.Println(err)
	// Output: param: invalid state: param: automation rate is fixed: cannot change k-rate to a-rate
}
