package names

// Source hands out fresh names for one compilation unit. It is created once
// per run and threaded explicitly through every identifier-generating
// operation; it is not safe for concurrent use and is never shared between
// runs.
type Source struct {
	counter int
}

func NewSource() *Source {
	return &Source{counter: FirstGeneratedTag}
}

// New returns a VName with the given base text and a tag never handed out
// before by this source.
func (s *Source) New(base string) VName {
	v := VName{Base: base, Tag: s.counter}
	s.counter++
	return v
}

// NewFrom returns a fresh name reusing the base text of an existing one.
func (s *Source) NewFrom(v VName) VName {
	return s.New(v.Base)
}
