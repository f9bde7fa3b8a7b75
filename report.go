package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Format — формат итогового вывода
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("неизвестный формат вывода: %q (text, json, yaml)", s)
}

// String выводит оба режима даже если значений нет: {LARGE: [5], SMALL: []}
func (r Records) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, mode := range Modes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(mode))
		sb.WriteString(": [")
		for j, v := range r[mode] {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(v))
		}
		sb.WriteString("]")
	}
	sb.WriteString("}")
	return sb.String()
}

// ModeSummary — сводка по значениям одного режима
type ModeSummary struct {
	Count int     `json:"count" yaml:"count"`
	Sum   float64 `json:"sum" yaml:"sum"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Summarize считает сводку, для пустого списка все поля нулевые
func Summarize(values []int) ModeSummary {
	if len(values) == 0 {
		return ModeSummary{}
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	return ModeSummary{
		Count: len(xs),
		Sum:   floats.Sum(xs),
		Mean:  stat.Mean(xs, nil),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
	}
}

// Summary — сводки для обоих отображений
type Summary struct {
	Scans     map[Mode]ModeSummary `json:"scans" yaml:"scans"`
	Potential map[Mode]ModeSummary `json:"potential" yaml:"potential"`
}

func summarizeRecords(r Records) map[Mode]ModeSummary {
	out := make(map[Mode]ModeSummary, len(Modes))
	for _, mode := range Modes {
		out[mode] = Summarize(r[mode])
	}
	return out
}

// Report — всё, что печатается после обработки лога. Notifications
// заполняется только для json и yaml: в тексте уведомления идут по ходу разбора.
type Report struct {
	Notifications []string `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Scans         Records  `json:"scans" yaml:"scans"`
	Potential     Records  `json:"potential" yaml:"potential"`
	Summary       *Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewReport снимает итог с агрегатора; withSummary добавляет сводку
func NewReport(a *Aggregator, withSummary bool) Report {
	rep := Report{Scans: a.Scans(), Potential: a.Potentials()}
	if withSummary {
		rep.Summary = &Summary{
			Scans:     summarizeRecords(rep.Scans),
			Potential: summarizeRecords(rep.Potential),
		}
	}
	return rep
}

// WriteReport печатает сначала scans, затем potential
func WriteReport(w io.Writer, rep Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}

	if _, err := fmt.Fprintln(w, rep.Scans.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, rep.Potential.String()); err != nil {
		return err
	}
	if rep.Summary == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, renderSummaryTable(rep.Summary))
	return err
}

func renderSummaryTable(s *Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("records", "mode", "count", "sum", "mean", "min", "max")
	addRows := func(name string, byMode map[Mode]ModeSummary) {
		for _, mode := range Modes {
			ms := byMode[mode]
			t.Row(name, string(mode),
				strconv.Itoa(ms.Count),
				formatFloat(ms.Sum),
				strconv.FormatFloat(ms.Mean, 'f', 2, 64),
				formatFloat(ms.Min),
				formatFloat(ms.Max))
		}
	}
	addRows("scans", s.Scans)
	addRows("potential", s.Potential)
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
