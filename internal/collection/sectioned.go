package collection

// Identifiable items carry a stable identity across loads.
type Identifiable interface {
	Identity() string
}

// Sectioned is the grouped variant: loads are split into sections by a
// builder, and pages merge into the trailing section when the IDs match.
type Sectioned[T Identifiable] struct {
	*Controller[T]
}

// NewSectioned returns a grouped controller.
func NewSectioned[T Identifiable](cfg Config[T], build SectionBuilder[T]) (*Sectioned[T], error) {
	if build == nil {
		return nil, ErrNoBuilder
	}
	c, err := newController(cfg, build)
	if err != nil {
		return nil, err
	}
	return &Sectioned[T]{Controller: c}, nil
}

// Locate finds the item with the given identity in the latest snapshot.
func (s *Sectioned[T]) Locate(id string) (IndexPath, bool) {
	return Locate(s.State(), id)
}

// Locate finds the item with the given identity in st.
func Locate[T Identifiable](st State[T], id string) (IndexPath, bool) {
	for si, sec := range st.Sections {
		for ri, it := range sec.Items {
			if it.Identity() == id {
				return IndexPath{Section: si, Row: ri}, true
			}
		}
	}
	return IndexPath{}, false
}
