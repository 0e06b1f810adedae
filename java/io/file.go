// Package io wraps java.io.File.
//
// The package name shadows the standard library; import it under an alias:
//
//	jio "github.com/wippyai/jvm-bridge/java/io"
//
//	f, err := jio.NewFile(dir)
//	if err != nil {
//	    return err
//	}
//	defer f.Release()
//	if err := f.DeleteOnExit(); err != nil {
//	    return err
//	}
//	ok, err := f.Exists()
package io

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
)

var (
	fileClass = descriptor.Named("java/io/File")

	newFile      = jvm.NewLazyConstructor(fileClass.Constructor().Parameter(descriptor.String))
	newChild     = jvm.NewLazyConstructor(fileClass.Constructor().Parameter(fileClass).Parameter(descriptor.String))
	deleteOnExit = jvm.NewLazyMethod(fileClass.Method("deleteOnExit").Returns(descriptor.Void))
	exists       = jvm.NewLazyMethod(fileClass.Method("exists").Returns(descriptor.Boolean))
	isDirectory  = jvm.NewLazyMethod(fileClass.Method("isDirectory").Returns(descriptor.Boolean))
	length       = jvm.NewLazyMethod(fileClass.Method("length").Returns(descriptor.Long))
	remove       = jvm.NewLazyMethod(fileClass.Method("delete").Returns(descriptor.Boolean))
	getPath      = jvm.NewLazyMethod(fileClass.Method("getPath").Returns(descriptor.String))
	getName      = jvm.NewLazyMethod(fileClass.Method("getName").Returns(descriptor.String))

	separator = jvm.NewStaticVariableOfType[string](fileClass, "separator", descriptor.String)
)

// File is a java.io.File.
type File struct {
	*jvm.Object
}

// NewFile runs new File(pathname).
func NewFile(pathname string) (*File, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	path, err := j.String(pathname)
	if err != nil {
		return nil, err
	}
	defer path.Release()

	obj, err := newFile.Invoke(j, path.Value())
	if err != nil {
		return nil, err
	}
	return &File{Object: obj}, nil
}

// Child runs new File(f, name).
func (f *File) Child(name string) (*File, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	child, err := j.String(name)
	if err != nil {
		return nil, err
	}
	defer child.Release()

	obj, err := newChild.Invoke(j, f.Object.Value(), child.Value())
	if err != nil {
		return nil, err
	}
	return &File{Object: obj}, nil
}

// DeleteOnExit asks the VM to delete the file when it shuts down.
func (f *File) DeleteOnExit() error {
	j, m, err := method(deleteOnExit)
	if err != nil {
		return err
	}
	return jvm.CallVoid(j, f, m)
}

// Exists reports whether the file or directory exists.
func (f *File) Exists() (bool, error) {
	return call[bool](f, exists)
}

func (f *File) IsDirectory() (bool, error) {
	return call[bool](f, isDirectory)
}

// Length returns the file size in bytes, 0 for directories and missing files.
func (f *File) Length() (int64, error) {
	return call[int64](f, length)
}

// Delete removes the file or empty directory and reports whether it did.
func (f *File) Delete() (bool, error) {
	return call[bool](f, remove)
}

func (f *File) Path() (string, error) {
	return call[string](f, getPath)
}

func (f *File) Name() (string, error) {
	return call[string](f, getName)
}

// Separator reads File.separator.
func Separator() (string, error) {
	j, err := jvm.Get()
	if err != nil {
		return "", err
	}
	return separator.Get(j)
}

func method(l *jvm.LazyMethod) (*jvm.JVM, *jvm.Method, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, nil, err
	}
	m, err := l.Get(j)
	if err != nil {
		return nil, nil, err
	}
	return j, m, nil
}

func call[T jvm.Result](f *File, l *jvm.LazyMethod) (T, error) {
	j, m, err := method(l)
	if err != nil {
		var zero T
		return zero, err
	}
	return jvm.Call[T](j, f, m)
}
