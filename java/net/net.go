// Package net wraps java.net socket addresses. Import it under an alias,
// for example jnet.
package net

import (
	"github.com/wippyai/jvm-bridge/descriptor"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/value"
)

var (
	inetClass = descriptor.Named("java/net/InetSocketAddress")

	newWildcard = jvm.NewLazyConstructor(inetClass.Constructor().Parameter(descriptor.Int))
	newHostPort = jvm.NewLazyConstructor(inetClass.Constructor().Parameter(descriptor.String).Parameter(descriptor.Int))
	getPort     = jvm.NewLazyMethod(inetClass.Method("getPort").Returns(descriptor.Int))
	getHost     = jvm.NewLazyMethod(inetClass.Method("getHostString").Returns(descriptor.String))
	unresolved  = jvm.NewLazyMethod(inetClass.Method("isUnresolved").Returns(descriptor.Boolean))
)

// SocketAddress is an abstract java.net.SocketAddress.
type SocketAddress struct {
	*jvm.Object
}

// InetSocketAddress is a java.net.InetSocketAddress.
type InetSocketAddress struct {
	SocketAddress
}

// NewInetSocketAddress binds the wildcard address on port. A port outside
// 0..65535 makes the constructor throw IllegalArgumentException.
func NewInetSocketAddress(port int32) (*InetSocketAddress, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	obj, err := newWildcard.Invoke(j, value.Int(port))
	if err != nil {
		return nil, err
	}
	return &InetSocketAddress{SocketAddress{Object: obj}}, nil
}

// NewHostAddress creates an address for host and port.
func NewHostAddress(host string, port int32) (*InetSocketAddress, error) {
	j, err := jvm.Get()
	if err != nil {
		return nil, err
	}
	h, err := j.String(host)
	if err != nil {
		return nil, err
	}
	defer h.Release()

	obj, err := newHostPort.Invoke(j, h.Value(), value.Int(port))
	if err != nil {
		return nil, err
	}
	return &InetSocketAddress{SocketAddress{Object: obj}}, nil
}

func (a *InetSocketAddress) Port() (int32, error) {
	return call[int32](a, getPort)
}

// Host returns the host name or literal address without a reverse lookup.
func (a *InetSocketAddress) Host() (string, error) {
	return call[string](a, getHost)
}

func (a *InetSocketAddress) Unresolved() (bool, error) {
	return call[bool](a, unresolved)
}

func call[T jvm.Result](a *InetSocketAddress, l *jvm.LazyMethod) (T, error) {
	var zero T
	j, err := jvm.Get()
	if err != nil {
		return zero, err
	}
	m, err := l.Get(j)
	if err != nil {
		return zero, err
	}
	return jvm.Call[T](j, a, m)
}
