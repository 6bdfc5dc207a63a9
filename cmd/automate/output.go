package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/cwbudde/algo-audioparam/measure/zipper"
	"github.com/cwbudde/algo-audioparam/webaudio/script"
)

// writeTable prints one row per step seconds with a column per track.
func writeTable(w io.Writer, tracks []script.Track, sampleRate, step float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header, rule := "Time [s]", "--------"
	for _, tr := range tracks {
		header += "\t" + tr.Name
		rule += "\t" + dashes(len(tr.Name))
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return err
	}

	if len(tracks) == 0 {
		return tw.Flush()
	}
	stride := max(1, int(math.Round(step*sampleRate)))
	for frame := 0; frame < len(tracks[0].Samples); frame += stride {
		row := fmt.Sprintf("%.4f", float64(frame)/sampleRate)
		for _, tr := range tracks {
			row += fmt.Sprintf("\t%.6g", tr.Samples[frame])
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

// writeWAV encodes tr as a 16-bit mono WAV file, normalized to full scale
// when its peak exceeds 1.
func writeWAV(path string, tr script.Track, sampleRate float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	gain := 1.0
	if peak := peakAbs(tr.Samples); peak > 1 {
		gain = 1 / peak
	}

	pos := 0
	stream := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(tr.Samples) {
			return 0, false
		}
		n := min(len(samples), len(tr.Samples)-pos)
		for i := range n {
			v := tr.Samples[pos+i] * gain
			samples[i] = [2]float64{v, v}
		}
		pos += n
		return n, true
	})

	format := beep.Format{SampleRate: beep.SampleRate(int(sampleRate)), NumChannels: 1, Precision: 2}
	return wav.Encode(f, stream, format)
}

func peakAbs(samples []float64) float64 {
	var peak float64
	for _, v := range samples {
		peak = max(peak, math.Abs(v))
	}
	return peak
}

// writeAnalysis prints the zipper-noise share of every track.
func writeAnalysis(w io.Writer, tracks []script.Track, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Param\tCutoff [Hz]\tHigh-band ratio\n-----\t-----------\t---------------\n"); err != nil {
		return err
	}
	for _, tr := range tracks {
		res, err := zipper.Analyze(tr.Samples, zipper.WithSampleRate(sampleRate))
		if err != nil {
			return fmt.Errorf("%s: %w", tr.Name, err)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%.1f\t%.3e\n", tr.Name, res.CutoffHz, res.Ratio); err != nil {
			return err
		}
	}
	return tw.Flush()
}
