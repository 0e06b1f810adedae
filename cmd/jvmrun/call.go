package main

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/value"
)

// staticCall is a static method invocation spelled out as text: a class in
// dotted or slashed form, a method name, its descriptor and one string per
// argument.
type staticCall struct {
	class  string
	method string
	sig    string
	args   []string
}

func (c staticCall) String() string {
	return errors.JavaName(c.className()) + "." + c.method + c.sig
}

func (c staticCall) className() string {
	return strings.ReplaceAll(c.class, ".", "/")
}

// run resolves and invokes the method and renders the result.
func (c staticCall) run(j *jvm.JVM) (string, error) {
	params, ret, err := descriptor.ParseMethod(c.sig)
	if err != nil {
		return "", err
	}
	m, err := j.FindStaticMethod(descriptor.NewMethodSignature(descriptor.Named(c.className()), c.method, params, ret))
	if err != nil {
		return "", err
	}

	args, release, err := parseArgs(j, params, c.args)
	if err != nil {
		return "", err
	}
	defer release()

	switch ret.Kind() {
	case descriptor.KindVoid:
		return "void", jvm.CallStaticVoid(j, m, args...)
	case descriptor.KindBoolean:
		return render(j, m, args, strconv.FormatBool)
	case descriptor.KindByte:
		return render(j, m, args, func(v int8) string { return strconv.Itoa(int(v)) })
	case descriptor.KindChar:
		return render(j, m, args, func(v uint16) string { return strconv.QuoteRune(rune(v)) })
	case descriptor.KindShort:
		return render(j, m, args, func(v int16) string { return strconv.Itoa(int(v)) })
	case descriptor.KindInt:
		return render(j, m, args, func(v int32) string { return strconv.Itoa(int(v)) })
	case descriptor.KindLong:
		return render(j, m, args, func(v int64) string { return strconv.FormatInt(v, 10) })
	case descriptor.KindFloat:
		return render(j, m, args, func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) })
	case descriptor.KindDouble:
		return render(j, m, args, func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) })
	}

	obj, err := jvm.CallStatic[*jvm.Object](j, m, args...)
	if err != nil {
		return "", err
	}
	defer obj.Release()
	if ret == descriptor.String && !obj.IsNull() {
		s, err := obj.ToString()
		return strconv.Quote(s), err
	}
	return obj.ToString()
}

func render[T jvm.Result](j *jvm.JVM, m *jvm.Method, args []value.Value, format func(T) string) (string, error) {
	v, err := jvm.CallStatic[T](j, m, args...)
	if err != nil {
		return "", err
	}
	return format(v), nil
}

// parseArgs converts text arguments to values of the parameter types.
// Strings become java.lang.String objects freed by release; the literal
// null passes a null reference to any reference parameter.
func parseArgs(j *jvm.JVM, params []descriptor.Class, texts []string) ([]value.Value, func(), error) {
	var owned []*jvm.Object
	release := func() {
		for _, o := range owned {
			o.Release()
		}
	}
	if len(texts) != len(params) {
		return nil, release, errors.New(errors.PhaseInvoke, errors.KindArgumentMismatch).
			Value(len(texts)).
			Detail("want %d arguments, got %d", len(params), len(texts)).
			Build()
	}

	args := make([]value.Value, len(params))
	for i, p := range params {
		v, err := parseArg(p, texts[i])
		if err == nil && p == descriptor.String && texts[i] != "null" {
			var s *jvm.Object
			if s, err = j.String(texts[i]); err == nil {
				owned = append(owned, s)
				v = s.Value()
			}
		}
		if err != nil {
			release()
			return nil, func() {}, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
				Value(texts[i]).
				Cause(err).
				Detail("argument %d: cannot convert %q to %s", i, texts[i], p).
				Build()
		}
		args[i] = v
	}
	return args, release, nil
}

func parseArg(p descriptor.Class, s string) (value.Value, error) {
	switch p.Kind() {
	case descriptor.KindBoolean:
		b, err := strconv.ParseBool(s)
		return value.Boolean(b), err
	case descriptor.KindByte:
		n, err := strconv.ParseInt(s, 0, 8)
		return value.Byte(int8(n)), err
	case descriptor.KindChar:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || r > 0xffff {
			return value.Value{}, strconv.ErrSyntax
		}
		return value.Char(uint16(r)), nil
	case descriptor.KindShort:
		n, err := strconv.ParseInt(s, 0, 16)
		return value.Short(int16(n)), err
	case descriptor.KindInt:
		n, err := strconv.ParseInt(s, 0, 32)
		return value.Int(int32(n)), err
	case descriptor.KindLong:
		n, err := strconv.ParseInt(s, 0, 64)
		return value.Long(n), err
	case descriptor.KindFloat:
		f, err := strconv.ParseFloat(s, 32)
		return value.Float(float32(f)), err
	case descriptor.KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		return value.Double(f), err
	}
	if s == "null" || p == descriptor.String {
		return value.Null(), nil
	}
	return value.Value{}, errors.New(errors.PhaseInvoke, errors.KindUnsupported).
		Detail("only strings and null can be passed as objects").
		Build()
}
