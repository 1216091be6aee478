package provider

// Unit describes one registered source unit of a program.
type Unit struct {
	Name  string
	Index int
	Size  int
}

// UnitLister is implemented by engine programs that can enumerate their
// units. It is optional.
type UnitLister interface {
	Units() []Unit
}
