package lang

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
)

var (
	throwableClass = descriptor.Named("java/lang/Throwable")

	newThrowable = jvm.NewLazyConstructor(throwableClass.Constructor().Parameter(descriptor.String))
	getMessage   = jvm.NewLazyMethod(throwableClass.Method("getMessage").Returns(descriptor.String))
)

// Throwable is a java.lang.Throwable.
type Throwable struct {
	*jvm.Object
}

// NewThrowable constructs a Throwable with the given detail message.
func NewThrowable(message string) (*Throwable, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	msg, err := j.String(message)
	if err != nil {
		return nil, err
	}
	defer msg.Release()

	obj, err := newThrowable.Invoke(j, msg.Value())
	if err != nil {
		return nil, err
	}
	return &Throwable{Object: obj}, nil
}

// Message returns the detail message, empty if it is null.
func (t *Throwable) Message() (string, error) {
	j, err := jvm.Get()
	if err != nil {
		return "", err
	}
	m, err := getMessage.Get(j)
	if err != nil {
		return "", err
	}
	return jvm.Call[string](j, t, m)
}
