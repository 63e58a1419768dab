// Package export writes population samples to CSV for offline charting.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"water-rates/internal/montecarlo"
)

// WritePopulationCSV writes one row per synthetic individual: baseline
// usage, solved usage, elasticity, and bill. Bills are rounded to cents;
// usage columns keep full precision for downstream binning.
func WritePopulationCSV(path string, pop montecarlo.Population) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"baseline_usage_kgal",
		"usage_kgal",
		"elasticity",
		"bill_usd",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range pop.Usages {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(pop.BaselineUsages[i]),
			fmtFloat(pop.Usages[i]),
			fmtFloat(pop.Elasticities[i]),
			decimal.NewFromFloat(pop.Bills[i]).Round(2).String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
