package lang

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	systemClass = descriptor.Named("java/lang/System")

	getProperty = jvm.NewLazyStaticMethod(systemClass.Method("getProperty").
		Parameter(descriptor.String).
		Returns(descriptor.String))
	setProperty = jvm.NewLazyStaticMethod(systemClass.Method("setProperty").
		Parameter(descriptor.String).
		Parameter(descriptor.String).
		Returns(descriptor.String))
	lineSeparator = jvm.NewLazyStaticMethod(systemClass.Method("lineSeparator").
		Returns(descriptor.String))
)

// Property returns the system property key. ok is false if it is not set.
func Property(key string) (val string, ok bool, err error) {
	j, err := jvm.Get()
	if err != nil {
		return "", false, err
	}
	m, err := getProperty.Get(j)
	if err != nil {
		return "", false, err
	}
	k, err := j.String(key)
	if err != nil {
		return "", false, err
	}
	defer k.Release()

	obj, err := jvm.CallStatic[*jvm.Object](j, m, k.Value())
	if err != nil || obj.IsNull() {
		return "", false, err
	}
	defer obj.Release()
	val, err = obj.ToString()
	return val, err == nil, err
}

// SetProperty sets a system property and returns its previous value.
func SetProperty(key, val string) (string, error) {
	j, err := jvm.Get()
	if err != nil {
		return "", err
	}
	m, err := setProperty.Get(j)
	if err != nil {
		return "", err
	}
	args, release, err := javaStrings(j, key, val)
	if err != nil {
		return "", err
	}
	defer release()
	return jvm.CallStatic[string](j, m, args...)
}

// LineSeparator returns the platform line separator.
func LineSeparator() (string, error) {
	j, err := jvm.Get()
	if err != nil {
		return "", err
	}
	m, err := lineSeparator.Get(j)
	if err != nil {
		return "", err
	}
	return jvm.CallStatic[string](j, m)
}

// javaStrings creates one java.lang.String argument per s. release frees them.
func javaStrings(j *jvm.JVM, ss ...string) ([]value.Value, func(), error) {
	objs := make([]*jvm.Object, 0, len(ss))
	release := func() {
		for _, o := range objs {
			o.Release()
		}
	}
	args := make([]value.Value, 0, len(ss))
	for _, s := range ss {
		o, err := j.String(s)
		if err != nil {
			release()
			return nil, nil, err
		}
		objs = append(objs, o)
		args = append(args, o.Value())
	}
	return args, release, nil
}
