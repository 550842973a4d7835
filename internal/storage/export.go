package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/rootfind/internal/roots"
)

type ExportData struct {
	RunMetadata
	Trace []roots.Iteration `json:"trace"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, trace []roots.Iteration) error {
	data := ExportData{RunMetadata: *meta, Trace: trace}
	if data.Trace == nil {
		data.Trace = []roots.Iteration{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteTraceCSV writes one row per iteration. Values use the shortest
// representation that round-trips.
func WriteTraceCSV(w io.Writer, trace []roots.Iteration) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(traceHeader); err != nil {
		return err
	}

	for _, it := range trace {
		row := []string{
			strconv.Itoa(it.K),
			formatFloat(it.Lower),
			formatFloat(it.Upper),
			formatFloat(it.FLower),
			formatFloat(it.FUpper),
			formatFloat(it.Width),
			it.Status.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
