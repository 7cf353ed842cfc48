package plot

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteSamplesCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"index", "x", "y", "ex", "ey", "magnitude"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Index),
			fmtFloat(s.X),
			fmtFloat(s.Y),
			fmtFloat(s.Ex),
			fmtFloat(s.Ey),
			fmtFloat(s.Magnitude),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 10, 64)
}
