package renderer

// RefCounted tracks shared ownership of a resource. Release hooks run once, when the
// last reference is dropped.
type RefCounted struct {
	refs      int
	onRelease []func()
}

func (r *RefCounted) AddRef() {
	r.refs++
}

// Release drops one reference and reports whether it was the last one.
func (r *RefCounted) Release() bool {
	if r.refs <= 0 {
		return false
	}
	r.refs--
	if r.refs > 0 {
		return false
	}
	hooks := r.onRelease
	r.onRelease = nil
	for _, fn := range hooks {
		fn()
	}
	return true
}

func (r *RefCounted) Refs() int {
	return r.refs
}

func (r *RefCounted) OnRelease(fn func()) {
	r.onRelease = append(r.onRelease, fn)
}
