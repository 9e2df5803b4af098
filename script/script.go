// Package script runs tengo placement scripts against an avatar.
//
// A script drives one adjuster through a small set of builtins:
//
//	move(x, y)        moves the avatar so its main sub-model lands on (x, y)
//	place(x, y)       sets the root position directly
//	scale(s)          sets the uniform scale
//	rotate(deg)       sets the rotation in degrees
//	mirror(b)         mirrors the avatar horizontally
//	motion(name)      plays a motion
//	expression(name)  plays an expression
//	filter(name, v)   sets a filter value
//	position()        returns the main sub-model world position as [x, y]
//
// The math, text and fmt standard modules are importable.
package script

import (
	"context"
	"fmt"

	"github.com/akmonengine/puppet"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var modules = []string{"math", "text", "fmt"}

// Run compiles src and runs it to completion or until ctx is done.
func Run(ctx context.Context, src []byte, target puppet.Adjuster) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(modules...))

	for _, fn := range builtins(target) {
		if err := s.Add(fn.Name, fn); err != nil {
			return fmt.Errorf("script: add %s: %w", fn.Name, err)
		}
	}

	if _, err := s.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func builtins(a puppet.Adjuster) []*tengo.UserFunction {
	return []*tengo.UserFunction{
		{Name: "move", Value: floats2("move", a.SetCharacterWorldPosition)},
		{Name: "place", Value: floats2("place", a.SetPosition)},
		{Name: "scale", Value: float1("scale", a.SetScale)},
		{Name: "rotate", Value: float1("rotate", a.SetRotation)},
		{Name: "mirror", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			reverse, ok := tengo.ToBool(args[0])
			if !ok {
				return nil, invalidArg("mirror", "first", "bool", args[0])
			}
			a.SetReverseXScale(reverse)
			return tengo.UndefinedValue, nil
		}},
		{Name: "motion", Value: string1("motion", a.PlayMotion)},
		{Name: "expression", Value: string1("expression", a.PlayExp)},
		{Name: "filter", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, ok := args[0].(*tengo.String)
			if !ok {
				return nil, invalidArg("filter", "first", "string", args[0])
			}
			value, ok := tengo.ToFloat64(args[1])
			if !ok {
				return nil, invalidArg("filter", "second", "float", args[1])
			}
			a.SetFilterValue(name.Value, value)
			return tengo.UndefinedValue, nil
		}},
		{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 0 {
				return nil, tengo.ErrWrongNumArguments
			}
			var x, y float64
			if main := a.MainPos(); main != nil {
				p := main.Position()
				x, y = p.X(), p.Y()
			}
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
		}},
	}
}

func float1(name string, fn func(float64)) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, invalidArg(name, "first", "float", args[0])
		}
		fn(v)
		return tengo.UndefinedValue, nil
	}
}

func floats2(name string, fn func(x, y float64)) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, invalidArg(name, "first", "float", args[0])
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, invalidArg(name, "second", "float", args[1])
		}
		fn(x, y)
		return tengo.UndefinedValue, nil
	}
}

func string1(name string, fn func(string)) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		s, ok := args[0].(*tengo.String)
		if !ok {
			return nil, invalidArg(name, "first", "string", args[0])
		}
		fn(s.Value)
		return tengo.UndefinedValue, nil
	}
}

func invalidArg(fn, pos, expected string, found tengo.Object) error {
	return tengo.ErrInvalidArgumentType{
		Name:     fmt.Sprintf("%s: %s", fn, pos),
		Expected: expected,
		Found:    found.TypeName(),
	}
}
