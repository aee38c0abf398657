package typesystem

import "github.com/Happy-Ferret/futhark/internal/names"

// AliasLookup resolves a type name to a user-defined abbreviation, if one
// exists. The returned definition is expected to be fully expanded already;
// recording passes expand aliases-of-aliases before storing them.
type AliasLookup func(name names.VName) (typeParams []string, def Type, ok bool)

// ExpandWith erases every user type abbreviation from t, substituting
// arguments for the abbreviation's parameters. The result contains no
// reference to any name the lookup knows about.
func ExpandWith(t Type, lookup AliasLookup) Type {
	if t == nil {
		return nil
	}
	switch typ := t.(type) {
	case TCon:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = ExpandWith(a, lookup)
		}
		params, def, ok := lookup(typ.Name)
		if !ok {
			return TCon{Quals: typ.Quals, Name: typ.Name, Args: args}
		}
		s := Subst{}
		for i, p := range params {
			if i < len(args) {
				s[p] = args[i]
			}
		}
		return def.Apply(s)
	case TArray:
		return TArray{Elem: ExpandWith(typ.Elem, lookup), Shape: typ.Shape}
	case TRecord:
		fields := make(map[string]Type, len(typ.Fields))
		for k, v := range typ.Fields {
			fields[k] = ExpandWith(v, lookup)
		}
		return TRecord{Fields: fields}
	case TFunc:
		return TFunc{Param: ExpandWith(typ.Param, lookup), Return: ExpandWith(typ.Return, lookup)}
	default:
		return t
	}
}
