package storage

import (
	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// ResultFile is the JSON document saved for one search.
type ResultFile struct {
	Start       world.ChunkPos `json:"start"`
	End         world.ChunkPos `json:"end"`
	Width       int32          `json:"width"`
	Height      int32          `json:"height"`
	Result      search.Result  `json:"result"`
	Probability float64        `json:"probability"`
}

// NewResultFile captures a search and its outcome.
func NewResultFile(start, end world.ChunkPos, w search.Window, res search.Result) ResultFile {
	return ResultFile{
		Start:       start,
		End:         end,
		Width:       w.Width,
		Height:      w.Height,
		Result:      res,
		Probability: res.Probability(),
	}
}

// Window returns the searched window size.
func (rf ResultFile) Window() search.Window {
	return search.Window{Width: rf.Width, Height: rf.Height}
}
