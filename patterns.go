package main

import (
	"regexp"
	"strconv"
)

// Mode — режим разведки, в котором работает рой
type Mode string

const (
	ModeLarge Mode = "LARGE"
	ModeSmall Mode = "SMALL"
)

// Modes здесь перечислены режимы в порядке вывода
var Modes = []Mode{ModeLarge, ModeSmall}

// Общий префикс строк SwarmAgent: таймштамп, уровень, компонент и цвет агента.
// Между INFO и компонентом logback ставит два пробела, допускаем любое количество.
const agentLinePrefix = `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} INFO +SwarmAgent:\d+ - Agent \[r=(\d+),g=(\d+),b=(\d+)\] `

var (
	scanPattern      = regexp.MustCompile(agentLinePrefix + `scanned and discovered (\d+) coords`)
	potentialPattern = regexp.MustCompile(agentLinePrefix + `potentially discovering (\d+) coords`)
	switchPattern    = regexp.MustCompile(agentLinePrefix + `switching to mode (SMALL|LARGE)`)
)

// EventKind — результат классификации строки
type EventKind int

const (
	EventNone EventKind = iota
	EventScan
	EventPotential
	EventSwitch
)

func (k EventKind) String() string {
	switch k {
	case EventScan:
		return "scan"
	case EventPotential:
		return "potential"
	case EventSwitch:
		return "switch"
	default:
		return "none"
	}
}

// Agent — цвет агента из строки лога, по нему агенты различаются
type Agent struct {
	R, G, B int
}

// Event описывает распознанную строку. Count заполнен для EventScan и
// EventPotential, Mode — для EventSwitch.
type Event struct {
	Kind  EventKind
	Agent Agent
	Count int
	Mode  Mode
}

// Classify сопоставляет строку с тремя шаблонами, первый совпавший выигрывает.
// Всё, что не подошло (в том числе число, не влезающее в int), даёт EventNone.
func Classify(line string) Event {
	if m := scanPattern.FindStringSubmatch(line); m != nil {
		return countEvent(EventScan, m)
	}
	if m := potentialPattern.FindStringSubmatch(line); m != nil {
		return countEvent(EventPotential, m)
	}
	if m := switchPattern.FindStringSubmatch(line); m != nil {
		return Event{Kind: EventSwitch, Agent: parseAgent(m), Mode: Mode(m[4])}
	}
	return Event{}
}

func countEvent(kind EventKind, m []string) Event {
	count, err := strconv.Atoi(m[4])
	if err != nil {
		return Event{}
	}
	return Event{Kind: kind, Agent: parseAgent(m), Count: count}
}

// Цвет не участвует в агрегации, поэтому ошибки разбора просто дают ноль.
func parseAgent(m []string) Agent {
	r, _ := strconv.Atoi(m[1])
	g, _ := strconv.Atoi(m[2])
	b, _ := strconv.Atoi(m[3])
	return Agent{R: r, G: g, B: b}
}
