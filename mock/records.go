package mock

import "github.com/fwojciec/colorhl"

// Compile-time interface verification.
var (
	_ colorhl.RecordLoader = (*RecordLoader)(nil)
	_ colorhl.RecordSaver  = (*RecordSaver)(nil)
)

// RecordLoader is a mock implementation of colorhl.RecordLoader.
type RecordLoader struct {
	LoadFn func(path string) ([]colorhl.Record, error)
}

func (l *RecordLoader) Load(path string) ([]colorhl.Record, error) {
	return l.LoadFn(path)
}

// RecordSaver is a mock implementation of colorhl.RecordSaver.
type RecordSaver struct {
	SaveFn func(path string, records ...colorhl.Record) error
}

func (s *RecordSaver) Save(path string, records ...colorhl.Record) error {
	return s.SaveFn(path, records...)
}
