package lang

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
)

var (
	booleanClass = descriptor.Named("java/lang/Boolean")

	booleanValue = jvm.NewLazyMethod(booleanClass.Method("booleanValue").Returns(descriptor.Boolean))
	trueValue    = jvm.NewStaticVariable[*jvm.Object](booleanClass, "TRUE")
	falseValue   = jvm.NewStaticVariable[*jvm.Object](booleanClass, "FALSE")
)

// Boolean is a boxed java.lang.Boolean.
type Boolean struct {
	*jvm.Object
}

// True returns a reference to Boolean.TRUE.
func True() (*Boolean, error) { return constant(trueValue) }

// False returns a reference to Boolean.FALSE.
func False() (*Boolean, error) { return constant(falseValue) }

func constant(v *jvm.StaticVariable[*jvm.Object]) (*Boolean, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	obj, err := v.Get(j)
	if err != nil {
		return nil, err
	}
	return &Boolean{Object: obj}, nil
}

func (b *Boolean) Bool() (bool, error) {
	j, err := jvm.Get()
	if err != nil {
		return false, err
	}
	m, err := booleanValue.Get(j)
	if err != nil {
		return false, err
	}
	return jvm.Call[bool](j, b, m)
}
