package opengl

// Unwind collects cleanups for a partially built GL object so a failure halfway through
// can free what was already created.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

// Unwind runs the cleanups in reverse order of registration. It has a pointer receiver
// so a deferred call sees cleanups added after the defer statement.
func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

// Discard forgets the cleanups once the object is complete.
func (u *Unwind) Discard() {
	*u = nil
}
