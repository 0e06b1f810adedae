package lang

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	integerClass = descriptor.Named("java/lang/Integer")

	newInteger = jvm.NewLazyConstructor(integerClass.Constructor().Parameter(descriptor.Int))
	intValue   = jvm.NewLazyMethod(integerClass.Method("intValue").Returns(descriptor.Int))
	parseInt   = jvm.NewLazyStaticMethod(integerClass.Method("parseInt").
		Parameter(descriptor.String).
		Returns(descriptor.Int))

	maxValue = jvm.NewStaticVariableOfType[int32](integerClass, "MAX_VALUE", descriptor.Int)
	minValue = jvm.NewStaticVariableOfType[int32](integerClass, "MIN_VALUE", descriptor.Int)
)

// Integer is a boxed java.lang.Integer.
type Integer struct {
	*jvm.Object
}

func NewInteger(i int32) (*Integer, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	obj, err := newInteger.Invoke(j, value.Int(i))
	if err != nil {
		return nil, err
	}
	return &Integer{Object: obj}, nil
}

func (i *Integer) Int32() (int32, error) {
	j, err := jvm.Get()
	if err != nil {
		return 0, err
	}
	m, err := intValue.Get(j)
	if err != nil {
		return 0, err
	}
	return jvm.Call[int32](j, i, m)
}

// ParseInt runs Integer.parseInt. A malformed s surfaces as a
// NumberFormatException error when exceptions are enabled.
func ParseInt(s string) (int32, error) {
	j, err := jvm.Get()
	if err != nil {
		return 0, err
	}
	m, err := parseInt.Get(j)
	if err != nil {
		return 0, err
	}
	str, err := j.String(s)
	if err != nil {
		return 0, err
	}
	defer str.Release()
	return jvm.CallStatic[int32](j, m, str.Value())
}

// MaxInteger reads Integer.MAX_VALUE.
func MaxInteger() (int32, error) {
	j, err := jvm.Get()
	if err != nil {
		return 0, err
	}
	return maxValue.Get(j)
}

// MinInteger reads Integer.MIN_VALUE.
func MinInteger() (int32, error) {
	j, err := jvm.Get()
	if err != nil {
		return 0, err
	}
	return minValue.Get(j)
}
