package triangulation

import "github.com/pkg/errors"

// Threading errors up through the boundary walk, table construction and edit
// replay would add a ton of complexity to the code. Instead, we use panics
// carrying a typed error, and the public entry points recover to convert to an
// error the caller can inspect.

// InvalidInputError reports a polygon face that cannot be triangulated, e.g.
// one whose boundary touches a non-manifold vertex. It is raised before any
// mesh mutation, so the mesh is left unchanged.
type InvalidInputError struct {
	error
}

// InternalError reports a programming-invariant violation: the computed split
// table disagrees with the mesh's actual topology, or an unrecognized
// objective was selected. The mesh may have been partially modified and should
// no longer be trusted.
type InternalError struct {
	error
}

// Panic with an InvalidInputError.
func invalidf(format string, args ...interface{}) {
	panic(InvalidInputError{errors.Errorf(format, args...)})
}

// Panic with an InternalError.
func internalf(format string, args ...interface{}) {
	panic(InternalError{errors.Errorf(format, args...)})
}

func handleRecover(r interface{}) error {
	if r == nil {
		return nil
	}
	switch err := r.(type) {
	case InvalidInputError:
		return err
	case InternalError:
		return err
	}
	panic(r)
}
