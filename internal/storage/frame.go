package storage

import (
	"fmt"
	"strconv"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/session"
)

// FrameRow is one line of frames.csv.
type FrameRow struct {
	Frame     int
	Time      float64
	Dt        float64
	FPS       int
	Particles int
	Length    float64
	Energy    float64
	P1, P2    curve.Vec2
	V1, V2    curve.Vec2
}

func RowFromRecord(rec session.FrameRecord) FrameRow {
	return FrameRow{
		Frame:     rec.Frame,
		Time:      rec.Time,
		Dt:        rec.Dt,
		FPS:       rec.Stats.FPS,
		Particles: rec.Stats.Particles,
		Length:    rec.Stats.Length,
		Energy:    rec.Stats.Energy,
		P1:        rec.P1,
		P2:        rec.P2,
		V1:        rec.V1,
		V2:        rec.V2,
	}
}

func RowsFromRecords(recs []session.FrameRecord) []FrameRow {
	rows := make([]FrameRow, len(recs))
	for i, rec := range recs {
		rows[i] = RowFromRecord(rec)
	}
	return rows
}

func (r FrameRow) record() []string {
	return []string{
		strconv.Itoa(r.Frame),
		formatFloat(r.Time),
		formatFloat(r.Dt),
		strconv.Itoa(r.FPS),
		strconv.Itoa(r.Particles),
		formatFloat(r.Length),
		formatFloat(r.Energy),
		formatFloat(r.P1.X), formatFloat(r.P1.Y),
		formatFloat(r.P2.X), formatFloat(r.P2.Y),
		formatFloat(r.V1.X), formatFloat(r.V1.Y),
		formatFloat(r.V2.X), formatFloat(r.V2.Y),
	}
}

func parseRow(rec []string) (FrameRow, error) {
	if len(rec) != len(header) {
		return FrameRow{}, fmt.Errorf("storage: expected %d fields, got %d", len(header), len(rec))
	}

	ints := make([]int, 0, 3)
	floats := make([]float64, 0, len(rec)-3)
	for i, field := range rec {
		switch i {
		case 0, 3, 4:
			v, err := strconv.Atoi(field)
			if err != nil {
				return FrameRow{}, err
			}
			ints = append(ints, v)
		default:
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return FrameRow{}, err
			}
			floats = append(floats, v)
		}
	}

	return FrameRow{
		Frame:     ints[0],
		Time:      floats[0],
		Dt:        floats[1],
		FPS:       ints[1],
		Particles: ints[2],
		Length:    floats[2],
		Energy:    floats[3],
		P1:        curve.Vec(floats[4], floats[5]),
		P2:        curve.Vec(floats[6], floats[7]),
		V1:        curve.Vec(floats[8], floats[9]),
		V2:        curve.Vec(floats[10], floats[11]),
	}, nil
}

// Column extracts one named series from rows, for plotting and analysis.
func Column(rows []FrameRow, name string) ([]float64, error) {
	pick, ok := columns[name]
	if !ok {
		return nil, fmt.Errorf("storage: unknown column %q", name)
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = pick(r)
	}
	return out, nil
}

var columns = map[string]func(FrameRow) float64{
	"time":      func(r FrameRow) float64 { return r.Time },
	"fps":       func(r FrameRow) float64 { return float64(r.FPS) },
	"particles": func(r FrameRow) float64 { return float64(r.Particles) },
	"length":    func(r FrameRow) float64 { return r.Length },
	"energy":    func(r FrameRow) float64 { return r.Energy },
	"p1x":       func(r FrameRow) float64 { return r.P1.X },
	"p1y":       func(r FrameRow) float64 { return r.P1.Y },
	"p2x":       func(r FrameRow) float64 { return r.P2.X },
	"p2y":       func(r FrameRow) float64 { return r.P2.Y },
	"v1x":       func(r FrameRow) float64 { return r.V1.X },
	"v1y":       func(r FrameRow) float64 { return r.V1.Y },
	"v2x":       func(r FrameRow) float64 { return r.V2.X },
	"v2y":       func(r FrameRow) float64 { return r.V2.Y },
}
