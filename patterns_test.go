package main

import (
	"reflect"
	"testing"
)

func agentLine(body string) string {
	return "2020-02-03 14:15:16 INFO  SwarmAgent:123 - Agent [r=1,g=2,b=3] " + body
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "scan",
			line: agentLine("scanned and discovered 5 coords"),
			want: Event{Kind: EventScan, Agent: Agent{1, 2, 3}, Count: 5},
		},
		{
			name: "potential",
			line: agentLine("potentially discovering 12 coords"),
			want: Event{Kind: EventPotential, Agent: Agent{1, 2, 3}, Count: 12},
		},
		{
			name: "switch small",
			line: agentLine("switching to mode SMALL"),
			want: Event{Kind: EventSwitch, Agent: Agent{1, 2, 3}, Mode: ModeSmall},
		},
		{
			name: "switch large",
			line: agentLine("switching to mode LARGE"),
			want: Event{Kind: EventSwitch, Agent: Agent{1, 2, 3}, Mode: ModeLarge},
		},
		{
			name: "trailing content ignored",
			line: agentLine("scanned and discovered 0 coords and more"),
			want: Event{Kind: EventScan, Agent: Agent{1, 2, 3}, Count: 0},
		},
		{
			name: "single space after level",
			line: "2020-02-03 14:15:16 INFO SwarmAgent:1 - Agent [r=255,g=0,b=17] scanned and discovered 9 coords",
			want: Event{Kind: EventScan, Agent: Agent{255, 0, 17}, Count: 9},
		},
		{
			name: "other agent message",
			line: agentLine("scanning at Coord(x=1, y=2)"),
		},
		{
			name: "warning level",
			line: "2020-02-03 14:15:16 WARN  SwarmAgent:1 - Agent [r=1,g=2,b=3] scanned and discovered 5 coords",
		},
		{
			name: "malformed timestamp",
			line: "2020-2-03 14:15:16 INFO  SwarmAgent:1 - Agent [r=1,g=2,b=3] scanned and discovered 5 coords",
		},
		{
			name: "not anchored at start",
			line: "> " + agentLine("scanned and discovered 5 coords"),
		},
		{
			name: "truncated",
			line: agentLine("scanned and discovered 5"),
		},
		{
			name: "unknown mode",
			line: agentLine("switching to mode MEDIUM"),
		},
		{
			name: "negative count",
			line: agentLine("scanned and discovered -5 coords"),
		},
		{
			name: "count overflows int",
			line: agentLine("scanned and discovered 99999999999999999999999 coords"),
		},
		{
			name: "empty",
			line: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEventKindString(t *testing.T) {
	for kind, want := range map[EventKind]string{
		EventNone:      "none",
		EventScan:      "scan",
		EventPotential: "potential",
		EventSwitch:    "switch",
	} {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
