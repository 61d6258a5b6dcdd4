package rosetta_test

import (
	"fmt"
	"maps"
	"math"

	rosetta "github.com/bartekchlebek/Rosetta"
	"github.com/bartekchlebek/Rosetta/rules"
)

type person struct {
	Name  string
	Age   *int
	Email *string
}

func (p *person) MapJSON(s *rosetta.Session) {
	rosetta.Required(s.Key("name"), &p.Name, rosetta.String)
	rosetta.Optional(s.Key("age"), &p.Age, rosetta.Int, rules.Between(0, 150))
	rosetta.Optional(s.Key("email"), &p.Email, rosetta.String, rules.Pattern(`@`))
}

type team struct {
	Title   string
	Lead    person
	Deputy  *person
	Members []person
}

func (t *team) MapJSON(s *rosetta.Session) {
	rosetta.Required(s.Key("title"), &t.Title, rosetta.String)
	rosetta.Required(s.Key("lead"), &t.Lead, rosetta.Object[person]())
	rosetta.Optional(s.Key("deputy"), &t.Deputy, rosetta.Object[person]())
	rosetta.Required(s.Key("members"), &t.Members, rosetta.ArrayOf(rosetta.Object[person]()))
}

type envelope struct {
	A1    string
	A2    string
	Count int8
}

func (e *envelope) MapJSON(s *rosetta.Session) {
	rosetta.Required(s.At("result", "object", "a1-key"), &e.A1, rosetta.String)
	rosetta.Required(s.Key("result").Key("object").Key("a2-key"), &e.A2, rosetta.String)
	rosetta.Required(s.At("result", "count"), &e.Count, rosetta.Int8)
}

type node struct {
	Child *node
}

func (n *node) MapJSON(s *rosetta.Session) {
	rosetta.Optional(s.Key("child"), &n.Child, rosetta.Object[node]())
}

// tracked mutates its map while mapping, so decode must work on a clone.
type tracked struct {
	Name string
	Seen map[string]bool
}

func (t *tracked) Clone() tracked {
	return tracked{Name: t.Name, Seen: maps.Clone(t.Seen)}
}

func (t *tracked) MapJSON(s *rosetta.Session) {
	if t.Seen == nil {
		t.Seen = map[string]bool{}
	}
	t.Seen["visited"] = true
	rosetta.Required(s.Key("name"), &t.Name, rosetta.String)
}

func ptr[T any](v T) *T { return &v }

func posInf() float64 { return math.Inf(1) }

// capture returns options that hand the final log of a call to *dst.
func capture(dst **rosetta.Log) []rosetta.Option {
	return []rosetta.Option{
		rosetta.WithLogLevel(rosetta.LogVerbose),
		rosetta.WithFormatter(func(_ any, l *rosetta.Log) string {
			*dst = l
			return ""
		}),
		rosetta.WithHandler(func(string) {}),
	}
}

func fmtSscanfHex(s string, c *rgb) (int, error) {
	return fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
}

func fmtHex(c rgb) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }
