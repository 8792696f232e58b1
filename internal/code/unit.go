package code

// Fragment is the output of one generator for one schema.
type Fragment struct {
	Name  string
	Items []Item
}

// Unit is the complete set of fragments emitted for a schema, in emission order.
type Unit struct {
	Schema    string
	Fragments []Fragment
}

// Fragment returns the fragment with the given name.
func (u *Unit) Fragment(name string) (Fragment, bool) {
	for _, f := range u.Fragments {
		if f.Name == name {
			return f, true
		}
	}

	return Fragment{}, false
}

// Names returns fragment names in emission order.
func (u *Unit) Names() []string {
	out := make([]string, len(u.Fragments))
	for i, f := range u.Fragments {
		out[i] = f.Name
	}

	return out
}
