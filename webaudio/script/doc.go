// Package script loads automation scripts from YAML, applies them to
// parameters and renders the result offline, one render quantum at a time.
//
// A script looks like:
//
//	sample_rate: 48000
//	quantum: 128
//	duration: 2
//	params:
//	  - name: gain
//	    default: 1
//	    min: 0
//	    max: 1
//	    events:
//	      - {type: setValue, value: 0, time: 0}
//	      - {type: linearRamp, value: 1, time: 0.5}
//	      - {type: setTarget, value: 0, time: 1, time_constant: 0.2}
//	      - {type: cancelAndHold, time: 1.5}
package script
