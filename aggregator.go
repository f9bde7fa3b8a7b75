package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrInputUnavailable оборачивает ошибки открытия и чтения источника лога
var ErrInputUnavailable = errors.New("input unavailable")

// От слишком длинной строки сохраняется только начало: шаблонам нужен префикс
const maxLinePrefix = 64 * 1024

// Records — значения по режимам, в порядке появления в логе
type Records map[Mode][]int

func newRecords() Records {
	return Records{ModeLarge: []int{}, ModeSmall: []int{}}
}

func (r Records) clone() Records {
	out := make(Records, len(r))
	for mode, values := range r {
		out[mode] = append([]int{}, values...)
	}
	return out
}

// Counters — сколько строк какого вида встретилось
type Counters struct {
	Lines      int
	Scans      int
	Potentials int
	Switches   int
	Skipped    int
	Agents     int
}

// Aggregator хранит текущий режим и накопленные значения одного прогона.
// Уведомления о смене режима пишутся в notify (nil — отбрасываются).
type Aggregator struct {
	mode       Mode
	scans      Records
	potentials Records
	agents     map[Agent]struct{}
	counters   Counters
	notify     io.Writer
}

func NewAggregator(notify io.Writer) *Aggregator {
	if notify == nil {
		notify = io.Discard
	}
	return &Aggregator{
		mode:       ModeLarge,
		scans:      newRecords(),
		potentials: newRecords(),
		agents:     make(map[Agent]struct{}),
		notify:     notify,
	}
}

// Feed классифицирует одну строку и применяет её к состоянию.
// Режим читается в момент обработки строки, смена влияет только на следующие.
func (a *Aggregator) Feed(line string) Event {
	a.counters.Lines++
	ev := Classify(line)
	switch ev.Kind {
	case EventScan:
		a.scans[a.mode] = append(a.scans[a.mode], ev.Count)
		a.counters.Scans++
	case EventPotential:
		a.potentials[a.mode] = append(a.potentials[a.mode], ev.Count)
		a.counters.Potentials++
	case EventSwitch:
		fmt.Fprintf(a.notify, "matched size to %s\n", ev.Mode)
		a.mode = ev.Mode
		a.counters.Switches++
	default:
		a.counters.Skipped++
		return ev
	}
	a.agents[ev.Agent] = struct{}{}
	return ev
}

// Consume читает строки по одной до конца источника
func (a *Aggregator) Consume(r io.Reader) error {
	br := bufio.NewReaderSize(r, maxLinePrefix)
	for {
		line, err := readLine(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: reading line %d: %w", ErrInputUnavailable, a.counters.Lines+1, err)
		}
		a.Feed(line)
	}
}

// readLine возвращает строку без перевода строки. Всё, что длиннее
// maxLinePrefix, дочитывается и отбрасывается.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && buf != nil {
				return string(buf), nil
			}
			return "", err
		}
		if room := maxLinePrefix - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			return string(buf), nil
		}
	}
}

func (a *Aggregator) Mode() Mode { return a.mode }

// Scans возвращает копию значений "scanned and discovered"
func (a *Aggregator) Scans() Records { return a.scans.clone() }

// Potentials возвращает копию значений "potentially discovering"
func (a *Aggregator) Potentials() Records { return a.potentials.clone() }

func (a *Aggregator) Stats() Counters {
	c := a.counters
	c.Agents = len(a.agents)
	return c
}
