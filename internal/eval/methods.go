package eval

import "toy/internal/ast"

// evalMethodCall dispatches a `receiver.method(args)` call: a small set of
// builtin methods on arrays/strings, or a user-defined impl-block method
// looked up by the receiver's struct name.
func (ev *Evaluator) evalMethodCall(e ast.Expr, env *Environment) (*Object, signal, error) {
	recv, sig, err := ev.evalExpr(e.Receiver, env)
	if err != nil || sig.kind != ctrlNone {
		return Unit, sig, err
	}
	methodName := ev.program.Interner.MustResolve(e.Name)

	if v, ok, err := callBuiltinMethod(recv, methodName); ok {
		return v, noSignal, err
	}

	if recv.Kind != ObjStruct {
		return nil, noSignal, &RuntimeError{Message: "method '" + methodName + "' not found"}
	}

	impl, ok := ev.methods[recv.StructName]
	if !ok {
		return nil, noSignal, &RuntimeError{Message: "type '" + recv.StructName + "' has no methods"}
	}
	var method *ast.Function
	for i := range impl.Methods {
		if ev.program.Interner.MustResolve(impl.Methods[i].Name) == methodName {
			method = &impl.Methods[i].Function
			break
		}
	}
	if method == nil {
		return nil, noSignal, &RuntimeError{Message: "method '" + methodName + "' not found on '" + recv.StructName + "'"}
	}

	args := make([]*Object, 0, len(e.Args)+1)
	args = append(args, recv)
	for _, a := range e.Args {
		v, sig, err := ev.evalExpr(a, env)
		if err != nil || sig.kind != ctrlNone {
			return Unit, sig, err
		}
		args = append(args, v)
	}
	v, err := ev.Call(method, args)
	return v, noSignal, err
}

// callBuiltinMethod handles the small set of methods available on every
// array/string value without an explicit impl block.
func callBuiltinMethod(recv *Object, name string) (*Object, bool, error) {
	switch {
	case recv.Kind == ObjArray && name == "len":
		return UInt64(uint64(len(recv.Elems))), true, nil
	case recv.Kind == ObjString && name == "len":
		return UInt64(uint64(len(recv.Str))), true, nil
	default:
		return nil, false, nil
	}
}
