package summary

import (
	"github.com/scgpm/interop/metrics"
	"github.com/scgpm/interop/schema"
	"github.com/scgpm/interop/section"
)

// Quality thresholds of the Q20 and Q30 percentages.
const (
	Q20 = 20
	Q30 = 30
)

// QualityRow holds the quality statistics of one cycle summed over all tiles.
type QualityRow struct {
	Cycle uint16
	// Totals[i] is the number of calls in bin i+1 across all tiles.
	Totals []uint64
	Total  uint64
	// WeightedAverage is Σ(score × count) / Σ(count).
	WeightedAverage float64
	PctQ20          float64
	PctQ30          float64
	// Empty is set when every bin is zero; the statistics are then zero.
	Empty bool
}

// QualityRows computes one row per cycle of lane that has at least one tile,
// in cycle order. Cycles without tiles are skipped.
func QualityRows(q *metrics.QualityScores, lane uint16, scale QualityScale) []QualityRow {
	scores := binScores(q.QualityLevels, q.Binning, scale)

	var rows []QualityRow
	for _, cycle := range q.Tiles.Cycles(lane) {
		tiles := q.Tiles.Cycle(lane, cycle)
		if len(tiles) == 0 {
			continue
		}
		rows = append(rows, qualityRow(cycle, tiles, scores))
	}

	return rows
}

func qualityRow(cycle uint16, tiles map[uint16]metrics.QualityTile, scores []float64) QualityRow {
	row := QualityRow{Cycle: cycle, Totals: make([]uint64, len(scores))}
	for _, tile := range tiles {
		for i, c := range tile.Counts {
			if i < len(row.Totals) {
				row.Totals[i] += uint64(c)
			}
		}
	}

	var weighted float64
	var q20, q30 uint64
	for i, c := range row.Totals {
		row.Total += c
		weighted += scores[i] * float64(c)
		if scores[i] >= Q20 {
			q20 += c
		}
		if scores[i] >= Q30 {
			q30 += c
		}
	}

	if row.Total == 0 {
		row.Empty = true
		return row
	}

	total := float64(row.Total)
	row.WeightedAverage = weighted / total
	row.PctQ20 = 100 * float64(q20) / total
	row.PctQ30 = 100 * float64(q30) / total

	return row
}

// binScores returns the score of every bin under scale.
//
// With ScaleRemapped a binning table with one entry per bin (v6) maps bin i
// straight to its remapped value; otherwise each bin index is taken as a raw
// quality and looked up in the table's ranges.
func binScores(levels int, binning *section.BinningTable, scale QualityScale) []float64 {
	scores := make([]float64, levels)
	for i := range scores {
		scores[i] = float64(i + 1)
		if scale != ScaleRemapped || binning.Count() == 0 {
			continue
		}

		if binning.Count() == levels {
			if s, ok := binning.RemapScore(i); ok {
				scores[i] = float64(s)
			}

			continue
		}
		if bin, ok := binning.Lookup(uint8(i + 1)); ok {
			if s, ok := binning.RemapScore(bin); ok {
				scores[i] = float64(s)
			}
		}
	}

	return scores
}

// BinIndexOnBinnedData reports whether scale scores q by bin index although
// q carries a binning table for a reduced set of levels. The weighted
// average, Q20 and Q30 are then computed on bin numbers rather than quality
// scores and ScaleRemapped should be used instead.
func BinIndexOnBinnedData(q *metrics.QualityScores, scale QualityScale) bool {
	return scale == ScaleBinIndex && q.Binning.Count() > 0 && q.QualityLevels < Q30
}

// QualityDetails returns the per-bin totals of lane, columns q1..qN.
// Cycles without tiles or with all bins zero are gaps.
func QualityDetails(q *metrics.QualityScores, lane uint16, opts ...Option) (*Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkLane(lane); err != nil {
		return nil, err
	}

	columns := make([]string, q.QualityLevels)
	for i := range columns {
		columns[i] = schema.QualityField(i + 1)
	}
	rows := indexRows(QualityRows(q, lane, cfg.scale))

	return build("quality details", lane, columns, cfg.lastCycle(q.MaxCycle), cfg.gaps,
		func(cycle uint16) ([]float64, bool) {
			row, ok := rows[cycle]
			if !ok || row.Empty {
				return nil, false
			}
			vals := make([]float64, len(row.Totals))
			for i, c := range row.Totals {
				vals[i] = float64(c)
			}

			return vals, true
		}), nil
}

// QualitySummary returns the weighted average, Q20 and Q30 percentages of lane.
// Cycles without tiles or with all bins zero are gaps.
func QualitySummary(q *metrics.QualityScores, lane uint16, opts ...Option) (*Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := checkLane(lane); err != nil {
		return nil, err
	}

	rows := indexRows(QualityRows(q, lane, cfg.scale))

	return build("quality summary", lane, []string{"avg", "q20", "q30"}, cfg.lastCycle(q.MaxCycle), cfg.gaps,
		func(cycle uint16) ([]float64, bool) {
			row, ok := rows[cycle]
			if !ok || row.Empty {
				return nil, false
			}

			return []float64{row.WeightedAverage, row.PctQ20, row.PctQ30}, true
		}), nil
}

func indexRows(rows []QualityRow) map[uint16]QualityRow {
	m := make(map[uint16]QualityRow, len(rows))
	for _, r := range rows {
		m[r.Cycle] = r
	}

	return m
}
