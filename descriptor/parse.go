package descriptor

import (
	"fmt"
	"strings"

	"github.com/wippyai/jvm-bridge/errors"
)

// ParseType decodes a single type descriptor such as "I", "[J" or
// "Ljava/io/File;". The whole input must be consumed.
func ParseType(sig string) (Class, error) {
	c, n, err := parseOne(sig, 0)
	if err != nil {
		return Class{}, err
	}
	if n != len(sig) {
		return Class{}, errors.ParseFailed(sig, n, "trailing characters")
	}
	return c, nil
}

// ParseMethod decodes a method descriptor "(<params>)<return>" into its
// parameter and return types.
func ParseMethod(sig string) ([]Class, Class, error) {
	if !strings.HasPrefix(sig, "(") {
		return nil, Class{}, errors.ParseFailed(sig, 0, "method descriptor must start with '('")
	}

	var params []Class
	pos := 1
	for {
		if pos >= len(sig) {
			return nil, Class{}, errors.ParseFailed(sig, pos, "unterminated parameter list")
		}
		if sig[pos] == ')' {
			pos++
			break
		}
		c, next, err := parseOne(sig, pos)
		if err != nil {
			return nil, Class{}, err
		}
		if c == Void {
			return nil, Class{}, errors.ParseFailed(sig, pos, "void parameter")
		}
		params = append(params, c)
		pos = next
	}

	ret, next, err := parseOne(sig, pos)
	if err != nil {
		return nil, Class{}, err
	}
	if next != len(sig) {
		return nil, Class{}, errors.ParseFailed(sig, next, "trailing characters")
	}
	return params, ret, nil
}

// MaxArrayDimensions is the deepest array type the JVM accepts.
const MaxArrayDimensions = 255

func parseOne(sig string, pos int) (Class, int, error) {
	dims := 0
	for pos+dims < len(sig) && sig[pos+dims] == '[' {
		dims++
	}
	if dims > MaxArrayDimensions {
		return Class{}, pos, errors.ParseFailed(sig, pos,
			fmt.Sprintf("array has %d dimensions, limit is %d", dims, MaxArrayDimensions))
	}

	elem, next, err := parseElem(sig, pos+dims)
	if err != nil || dims == 0 {
		return elem, next, err
	}
	if elem == Void {
		return Class{}, pos, errors.ParseFailed(sig, pos, "array of void")
	}
	return Class{name: sig[pos:next], native: true}, next, nil
}

func parseElem(sig string, pos int) (Class, int, error) {
	if pos >= len(sig) {
		return Class{}, pos, errors.ParseFailed(sig, pos, "unexpected end of descriptor")
	}

	ch := sig[pos]
	if _, ok := primitiveKinds[ch]; ok {
		return Class{name: string(ch), native: true}, pos + 1, nil
	}
	if ch != 'L' {
		return Class{}, pos, errors.ParseFailed(sig, pos, fmt.Sprintf("unknown type code %q", ch))
	}

	end := strings.IndexByte(sig[pos:], ';')
	if end < 0 {
		return Class{}, pos, errors.ParseFailed(sig, pos, "unterminated class name")
	}
	name := sig[pos+1 : pos+end]
	if name == "" {
		return Class{}, pos, errors.ParseFailed(sig, pos, "empty class name")
	}
	return Named(name), pos + end + 1, nil
}
