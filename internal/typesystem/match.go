package typesystem

import "fmt"

// Match computes the substitution that maps each type variable in the
// abstract type to the concrete subtype it corresponds to. Both inputs are
// assumed structurally congruent: the concrete type was obtained by applying
// the abstract one at a well-typed call site, so a shape mismatch is an
// internal invariant violation, not a user error. Callers wrap the returned
// error accordingly.
//
// Array sizes are irrelevant to matching; callers erase shapes first when
// they also use the concrete type as a cache key.
func Match(abstract, concrete Type) (Subst, error) {
	s := Subst{}
	if err := match(abstract, concrete, s); err != nil {
		return nil, err
	}
	return s, nil
}

func match(abstract, concrete Type, s Subst) error {
	switch a := abstract.(type) {
	case TVar:
		s[a.Name] = concrete
		return nil

	case TPrim:
		if _, ok := concrete.(TPrim); ok {
			return nil
		}
		return errIncongruent(abstract, concrete)

	case TCon:
		c, ok := concrete.(TCon)
		if !ok || c.Name != a.Name || len(c.Args) != len(a.Args) {
			return errIncongruent(abstract, concrete)
		}
		for i := range a.Args {
			if err := match(a.Args[i], c.Args[i], s); err != nil {
				return err
			}
		}
		return nil

	case TFunc:
		c, ok := concrete.(TFunc)
		if !ok {
			return errIncongruent(abstract, concrete)
		}
		if err := match(a.Param, c.Param, s); err != nil {
			return err
		}
		return match(a.Return, c.Return, s)

	case TArray:
		// Peel the abstract side's rank off both types, then match the
		// element types.
		c, ok := concrete.(TArray)
		if !ok || len(c.Shape) < len(a.Shape) {
			return errIncongruent(abstract, concrete)
		}
		rest := peelArray(c, len(a.Shape))
		return match(a.Elem, rest, s)

	case TRecord:
		c, ok := concrete.(TRecord)
		if !ok || len(c.Fields) != len(a.Fields) {
			return errIncongruent(abstract, concrete)
		}
		for _, k := range sortedFields(a.Fields) {
			cf, ok := c.Fields[k]
			if !ok {
				return errIncongruent(abstract, concrete)
			}
			if err := match(a.Fields[k], cf, s); err != nil {
				return err
			}
		}
		return nil

	default:
		return errIncongruent(abstract, concrete)
	}
}

// peelArray removes rank outer dimensions from an array type.
func peelArray(t TArray, rank int) Type {
	if len(t.Shape) == rank {
		return t.Elem
	}
	return TArray{Elem: t.Elem, Shape: t.Shape[rank:]}
}

func errIncongruent(abstract, concrete Type) error {
	return fmt.Errorf("structurally incongruent types: %s vs %s", abstract, concrete)
}
