package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/firesync/internal/swarm"
)

type ExportData struct {
	Meta   RunMetadata   `json:"meta"`
	Times  []float64     `json:"times"`
	States [][][]float64 `json:"states"` // per frame, per oscillator: [x, y, phase]
}

func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, frames [][]swarm.Oscillator) error {
	data := ExportData{
		Meta:   *meta,
		Times:  times,
		States: make([][][]float64, len(frames)),
	}

	for fi, frame := range frames {
		data.States[fi] = make([][]float64, len(frame))
		for i, o := range frame {
			data.States[fi][i] = []float64{o.Position.X, o.Position.Y, o.Phase}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, meta *RunMetadata, times []float64, frames [][]swarm.Oscillator) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, times, frames)
}
