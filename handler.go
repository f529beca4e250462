package almanac

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/timescale"
)

// Handler serves reports and conversions over HTTP. Job supplies the
// defaults for /now.
type Handler struct {
	Job   Job
	Table *leap.Table
}

func (h Handler) converter() *timescale.Converter {
	if h.Job.Converter != nil {
		return h.Job.Converter
	}
	return timescale.New(h.Table)
}

func (h Handler) table() *leap.Table {
	if h.Table == nil {
		return leap.Default
	}
	return h.Table
}

func (h Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/now", h.NowHandler)
	mux.HandleFunc("/convert", h.ConvertHandler)
	mux.HandleFunc("/leap", h.LeapHandler)
	return mux
}

func (h Handler) writeError(w http.ResponseWriter, code int, msg string, err error) {
	h.Job.logger().Error(msg, zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err = json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf("%s: %s", msg, err)})
	if err != nil {
		h.Job.logger().Error("encode error response", zap.Error(err))
	}
}

func (h Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.Job.logger().Error("encode response", zap.Error(err))
	}
}

func parseScales(param string) ([]timescale.Scale, error) {
	var scales []timescale.Scale
	for _, name := range strings.Split(param, ",") {
		s, err := timescale.ParseScale(name)
		if err != nil {
			return nil, err
		}
		scales = append(scales, s)
	}
	return scales, nil
}

// NowHandler reports the current instant. Optional parameters are scales
// (comma separated), precision and dut1.
func (h Handler) NowHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, http.StatusBadRequest, "parse form", err)
		return
	}

	job := h.Job
	job.Converter = h.converter()

	if _, ok := r.Form["scales"]; ok {
		scales, err := parseScales(r.FormValue("scales"))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "parse scales", err)
			return
		}
		job.Scales = scales
	}

	if _, ok := r.Form["precision"]; ok {
		p, err := strconv.Atoi(r.FormValue("precision"))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "parse precision", err)
			return
		}
		job.Precision = p
	}

	if _, ok := r.Form["dut1"]; ok {
		p, err := strconv.ParseFloat(r.FormValue("dut1"), 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "parse dut1", err)
			return
		}
		job.DUT1 = p
	}

	now := time.Now
	if job.Clock != nil {
		now = job.Clock
	}

	report, err := job.Report(now())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "report", err)
		return
	}
	h.writeJSON(w, report)
}

type conversion struct {
	From    timescale.Scale `json:"from"`
	To      timescale.Scale `json:"to"`
	Route   []string        `json:"route"`
	JD      [2]float64      `json:"jd"`
	Time    string          `json:"time"`
	Status  string          `json:"status"`
	Warning int             `json:"code"`
}

// ConvertHandler converts the date jd1+jd2 between the scales named by
// from and to. dtr, dut1, dta and deltat enable the edges that need them.
func (h Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, http.StatusBadRequest, "parse form", err)
		return
	}

	from, err := timescale.ParseScale(r.FormValue("from"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "parse from", err)
		return
	}
	to, err := timescale.ParseScale(r.FormValue("to"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "parse to", err)
		return
	}

	var parts [2]float64
	for i, key := range []string{"jd1", "jd2"} {
		if _, ok := r.Form[key]; !ok {
			continue
		}
		parts[i], err = strconv.ParseFloat(r.FormValue(key), 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "parse "+key, err)
			return
		}
	}

	var opts []timescale.ConvertOption
	params := []struct {
		key string
		opt func(float64) timescale.ConvertOption
	}{
		{"dtr", timescale.WithDTR},
		{"dut1", timescale.WithDUT1},
		{"dta", timescale.WithDTA},
		{"deltat", timescale.WithDeltaT},
	}
	for _, p := range params {
		if _, ok := r.Form[p.key]; !ok {
			continue
		}
		v, err := strconv.ParseFloat(r.FormValue(p.key), 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "parse "+p.key, err)
			return
		}
		opts = append(opts, p.opt(v))
	}

	route, err := timescale.Route(from, to, opts...)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "route", err)
		return
	}

	conv := h.converter()
	d, warn, err := conv.Convert(from, to, julian.Date{Part1: parts[0], Part2: parts[1]}, opts...)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "convert", err)
		return
	}
	cal, w2, err := conv.ToCalendar(to, h.Job.Precision, d)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "calendar", err)
		return
	}
	warn |= w2

	names := make([]string, len(route))
	for i, s := range route {
		names[i] = s.String()
	}

	h.writeJSON(w, conversion{
		From:    from,
		To:      to,
		Route:   names,
		JD:      [2]float64{d.Part1, d.Part2},
		Time:    cal.String(),
		Status:  warn.String(),
		Warning: int(warn),
	})
}

type leapEntry struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	DeltaAT    float64 `json:"delta_at"`
	DriftEpoch float64 `json:"drift_epoch,omitempty"`
	DriftRate  float64 `json:"drift_rate,omitempty"`
}

// LeapHandler lists the leap second table in effect
func (h Handler) LeapHandler(w http.ResponseWriter, r *http.Request) {
	entries := h.table().Get()
	out := make([]leapEntry, len(entries))
	for i, e := range entries {
		out[i] = leapEntry{
			Year:       e.Year,
			Month:      e.Month,
			DeltaAT:    e.DeltaAT,
			DriftEpoch: e.DriftEpoch,
			DriftRate:  e.DriftRate,
		}
	}
	h.writeJSON(w, out)
}
