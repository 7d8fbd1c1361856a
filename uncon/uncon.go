package uncon

// FromUnchecked builds U values from T values that already satisfy every invariant of U.
type FromUnchecked[T, U any] interface {
	FromUnchecked(v T) U
}

// IntoUnchecked converts T values into U values under the same contract as FromUnchecked.
type IntoUnchecked[T, U any] interface {
	IntoUnchecked(v T) U
}

// Func is a conversion function. It implements both FromUnchecked and IntoUnchecked.
type Func[T, U any] func(T) U

// FromUnchecked implements FromUnchecked.
func (f Func[T, U]) FromUnchecked(v T) U {
	return f(v)
}

// IntoUnchecked implements IntoUnchecked.
func (f Func[T, U]) IntoUnchecked(v T) U {
	return f(v)
}

type into[T, U any] struct {
	from FromUnchecked[T, U]
}

func (i into[T, U]) IntoUnchecked(v T) U {
	return i.from.FromUnchecked(v)
}

// Into returns the IntoUnchecked side of from. Converting through it is the same as
// calling from.FromUnchecked.
func Into[T, U any](from FromUnchecked[T, U]) IntoUnchecked[T, U] {
	if f, ok := from.(Func[T, U]); ok {
		return f
	}

	return into[T, U]{from: from}
}

// Convert builds a U from v using from.
func Convert[T, U any](v T, from FromUnchecked[T, U]) U {
	return from.FromUnchecked(v)
}

// ConvertInto converts v into a U using into.
func ConvertInto[T, U any](v T, into IntoUnchecked[T, U]) U {
	return into.IntoUnchecked(v)
}
