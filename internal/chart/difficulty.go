package chart

import "sort"

type Policy uint8

const (
	PolicyStylish Policy = iota
	PolicySectioned
)

type Difficulty struct {
	Name   string
	Policy Policy
	Params Params
}

func (d Difficulty) Generator() Generator {
	switch d.Policy {
	case PolicySectioned:
		return &Sectioned{Params: d.Params}
	default:
		return &Stylish{Params: d.Params}
	}
}

var difficulties = map[string]Difficulty{}

func register(name string, policy Policy, density float64) {
	p := DefaultParams()
	p.Density = density
	difficulties[name] = Difficulty{Name: name, Policy: policy, Params: p}
}

func init() {
	register("easy", PolicyStylish, 0.7)
	register("normal", PolicyStylish, 1)
	register("hard", PolicySectioned, 1)
}

func Lookup(name string) (Difficulty, bool) {
	d, ok := difficulties[name]
	return d, ok
}

func Names() []string {
	names := make([]string, 0, len(difficulties))
	for name := range difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
