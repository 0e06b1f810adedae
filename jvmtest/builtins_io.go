package jvmtest

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wippyai/jvm-bridge/value"
)

// fileClass models java.io.File over the host filesystem. State is the path.
func fileClass() Class {
	path := func(c *Call) string { return c.This.State.(string) }
	stat := func(c *Call) os.FileInfo {
		fi, err := os.Stat(path(c))
		if err != nil {
			return nil
		}
		return fi
	}
	return Class{
		Name: "java/io/File",
		Methods: []Method{
			{Name: "<init>", Sig: "(Ljava/lang/String;)V", Body: func(c *Call) value.Value {
				p, ok := c.String(0)
				if !ok {
					return c.Throw("java/lang/NullPointerException", "")
				}
				c.This.State = normalizePath(p)
				return value.Void()
			}},
			{Name: "<init>", Sig: "(Ljava/io/File;Ljava/lang/String;)V", Body: func(c *Call) value.Value {
				child, ok := c.String(1)
				if !ok {
					return c.Throw("java/lang/NullPointerException", "")
				}
				if parent := c.Object(0); parent != nil {
					c.This.State = filepath.Join(parent.State.(string), child)
				} else {
					c.This.State = normalizePath(child)
				}
				return value.Void()
			}},
			{Name: "exists", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(stat(c) != nil)
			}},
			{Name: "isDirectory", Sig: "()Z", Body: func(c *Call) value.Value {
				fi := stat(c)
				return value.Boolean(fi != nil && fi.IsDir())
			}},
			{Name: "isFile", Sig: "()Z", Body: func(c *Call) value.Value {
				fi := stat(c)
				return value.Boolean(fi != nil && fi.Mode().IsRegular())
			}},
			{Name: "length", Sig: "()J", Body: func(c *Call) value.Value {
				fi := stat(c)
				if fi == nil || fi.IsDir() {
					return value.Long(0)
				}
				return value.Long(fi.Size())
			}},
			{Name: "delete", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(os.Remove(path(c)) == nil)
			}},
			{Name: "mkdir", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(os.Mkdir(path(c), 0o755) == nil)
			}},
			{Name: "deleteOnExit", Sig: "()V", Body: func(c *Call) value.Value {
				c.VM().registerDeleteOnExit(path(c))
				return value.Void()
			}},
			{Name: "getName", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				p := path(c)
				if i := strings.LastIndexByte(p, os.PathSeparator); i >= 0 {
					p = p[i+1:]
				}
				return c.NewString(p)
			}},
			{Name: "getPath", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(path(c))
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(path(c))
			}},
		},
		Fields: []Field{
			{Name: "separator", Sig: "Ljava/lang/String;", Get: func(c *Call) value.Value {
				return c.NewString(string(os.PathSeparator))
			}},
		},
	}
}

// normalizePath drops duplicate and trailing separators like java.io.File.
func normalizePath(p string) string {
	sep := string(os.PathSeparator)
	for strings.Contains(p, sep+sep) {
		p = strings.ReplaceAll(p, sep+sep, sep)
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, sep)
	}
	return p
}

type socketAddress struct {
	host string
	port int32
}

// inetSocketAddressClass models java.net.InetSocketAddress without name
// resolution: literal IP addresses are resolved, host names are not.
func inetSocketAddressClass() Class {
	addr := func(c *Call) socketAddress { return c.This.State.(socketAddress) }
	checkPort := func(c *Call, port int32) bool {
		if port < 0 || port > 0xffff {
			c.Throw("java/lang/IllegalArgumentException", "port out of range:"+strconv.Itoa(int(port)))
			return false
		}
		return true
	}
	return Class{
		Name:  "java/net/InetSocketAddress",
		Super: "java/net/SocketAddress",
		Methods: []Method{
			{Name: "<init>", Sig: "(I)V", Body: func(c *Call) value.Value {
				port := c.Args[0].Int32()
				if checkPort(c, port) {
					c.This.State = socketAddress{host: "0.0.0.0", port: port}
				}
				return value.Void()
			}},
			{Name: "<init>", Sig: "(Ljava/lang/String;I)V", Body: func(c *Call) value.Value {
				host, ok := c.String(0)
				if !ok {
					return c.Throw("java/lang/IllegalArgumentException", "hostname can't be null")
				}
				port := c.Args[1].Int32()
				if checkPort(c, port) {
					c.This.State = socketAddress{host: host, port: port}
				}
				return value.Void()
			}},
			{Name: "getPort", Sig: "()I", Body: func(c *Call) value.Value {
				return value.Int(addr(c).port)
			}},
			{Name: "getHostString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(addr(c).host)
			}},
			{Name: "isUnresolved", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(net.ParseIP(addr(c).host) == nil)
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				a := addr(c)
				port := strconv.Itoa(int(a.port))
				if net.ParseIP(a.host) == nil {
					return c.NewString(a.host + "/<unresolved>:" + port)
				}
				return c.NewString(a.host + "/" + a.host + ":" + port)
			}},
		},
	}
}

func socketAddressClass() Class {
	return Class{Name: "java/net/SocketAddress"}
}
