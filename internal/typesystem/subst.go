package typesystem

// Subst is a mapping from type-variable names to types.
type Subst map[string]Type

// Compose combines two substitutions: applying the result is equivalent to
// applying s1 and then s2.
func (s1 Subst) Compose(s2 Subst) Subst {
	out := Subst{}
	for k, v := range s2 {
		out[k] = v
	}
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	return out
}

// applyWithCycleCheck applies a substitution while refusing to follow a
// variable it is already expanding, so a malformed self-referential
// substitution cannot loop forever.
func applyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		replacement, ok := s[typ.Name]
		if !ok {
			return typ
		}
		if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
			return typ
		}
		inner := copyVisited(visited)
		inner[typ.Name] = true
		return applyWithCycleCheck(replacement, s, inner)

	case TPrim:
		return typ

	case TCon:
		if len(typ.Args) == 0 {
			return typ
		}
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = applyWithCycleCheck(a, s, visited)
		}
		return TCon{Quals: typ.Quals, Name: typ.Name, Args: args}

	case TArray:
		return TArray{
			Elem:  applyWithCycleCheck(typ.Elem, s, visited),
			Shape: typ.Shape,
		}

	case TRecord:
		fields := make(map[string]Type, len(typ.Fields))
		for k, v := range typ.Fields {
			fields[k] = applyWithCycleCheck(v, s, visited)
		}
		return TRecord{Fields: fields}

	case TFunc:
		return TFunc{
			Param:  applyWithCycleCheck(typ.Param, s, visited),
			Return: applyWithCycleCheck(typ.Return, s, visited),
		}

	default:
		return t.Apply(s)
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
