package jvmtest

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wippyai/jvm-bridge/value"
)

func builtins() []Class {
	classes := []Class{objectClass(), classClass(), stringClass(), throwableClass()}
	for _, t := range [][2]string{
		{"java/lang/Exception", "java/lang/Throwable"},
		{"java/lang/RuntimeException", "java/lang/Exception"},
		{"java/lang/IllegalArgumentException", "java/lang/RuntimeException"},
		{"java/lang/IllegalStateException", "java/lang/RuntimeException"},
		{"java/lang/NullPointerException", "java/lang/RuntimeException"},
		{"java/lang/ArithmeticException", "java/lang/RuntimeException"},
		{"java/lang/NumberFormatException", "java/lang/IllegalArgumentException"},
		{"java/lang/Error", "java/lang/Throwable"},
		{"java/lang/LinkageError", "java/lang/Error"},
		{"java/lang/NoClassDefFoundError", "java/lang/LinkageError"},
		{"java/lang/IncompatibleClassChangeError", "java/lang/LinkageError"},
		{"java/lang/NoSuchMethodError", "java/lang/IncompatibleClassChangeError"},
		{"java/lang/NoSuchFieldError", "java/lang/IncompatibleClassChangeError"},
		{"java/io/IOException", "java/lang/Exception"},
	} {
		classes = append(classes, exceptionClass(t[0], t[1]))
	}
	return append(classes,
		integerClass(),
		booleanClass(),
		systemClass(),
		mathClass(),
		fileClass(),
		socketAddressClass(),
		inetSocketAddressClass(),
	)
}

func objectClass() Class {
	return Class{
		Name: ObjectClass,
		Methods: []Method{
			{Name: "<init>", Sig: "()V", Body: func(*Call) value.Value { return value.Void() }},
			{Name: "hashCode", Sig: "()I", Body: func(c *Call) value.Value {
				return value.Int(c.This.HashCode())
			}},
			{Name: "equals", Sig: "(Ljava/lang/Object;)Z", Body: func(c *Call) value.Value {
				return value.Boolean(c.This == c.Object(0))
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(c.This.String())
			}},
		},
	}
}

func classClass() Class {
	return Class{
		Name: "java/lang/Class",
		Methods: []Method{
			{Name: "getName", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(strings.ReplaceAll(c.This.State.(*class).name, "/", "."))
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString("class " + strings.ReplaceAll(c.This.State.(*class).name, "/", "."))
			}},
		},
	}
}

func stringClass() Class {
	text := func(c *Call) string {
		s, _ := c.This.State.(string)
		return s
	}
	return Class{
		Name: "java/lang/String",
		Methods: []Method{
			{Name: "<init>", Sig: "()V", Body: func(c *Call) value.Value {
				c.This.State = ""
				return value.Void()
			}},
			{Name: "length", Sig: "()I", Body: func(c *Call) value.Value {
				return value.Int(int32(len(utf16Units(text(c)))))
			}},
			{Name: "isEmpty", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(text(c) == "")
			}},
			{Name: "hashCode", Sig: "()I", Body: func(c *Call) value.Value {
				var h int32
				for _, u := range utf16Units(text(c)) {
					h = 31*h + int32(u)
				}
				return value.Int(h)
			}},
			{Name: "equals", Sig: "(Ljava/lang/Object;)Z", Body: func(c *Call) value.Value {
				other := c.Object(0)
				if other == nil || !other.InstanceOf("java/lang/String") {
					return value.Boolean(false)
				}
				return value.Boolean(other.State == c.This.State)
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.Local(c.This)
			}},
		},
	}
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xd800+(r>>10)), uint16(0xdc00+(r&0x3ff)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

func throwableClass() Class {
	c := exceptionClass("java/lang/Throwable", ObjectClass)
	c.Methods = append(c.Methods,
		Method{Name: "getMessage", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
			msg, _ := c.This.State.(string)
			if msg == "" {
				return value.Null()
			}
			return c.NewString(msg)
		}},
		Method{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
			s := c.This.javaName()
			if msg, _ := c.This.State.(string); msg != "" {
				s += ": " + msg
			}
			return c.NewString(s)
		}},
	)
	return c
}

// exceptionClass declares a Throwable subclass with the no-argument and
// message constructors.
func exceptionClass(name, super string) Class {
	return Class{
		Name:  name,
		Super: super,
		Methods: []Method{
			{Name: "<init>", Sig: "()V", Body: func(c *Call) value.Value {
				c.This.State = ""
				return value.Void()
			}},
			{Name: "<init>", Sig: "(Ljava/lang/String;)V", Body: func(c *Call) value.Value {
				c.This.State, _ = c.String(0)
				return value.Void()
			}},
		},
	}
}

func integerClass() Class {
	box := func(c *Call, i int32) value.Value {
		return c.Local(c.New("java/lang/Integer", i))
	}
	return Class{
		Name: "java/lang/Integer",
		Methods: []Method{
			{Name: "<init>", Sig: "(I)V", Body: func(c *Call) value.Value {
				c.This.State = c.Args[0].Int32()
				return value.Void()
			}},
			{Name: "intValue", Sig: "()I", Body: func(c *Call) value.Value {
				return value.Int(c.This.State.(int32))
			}},
			{Name: "hashCode", Sig: "()I", Body: func(c *Call) value.Value {
				return value.Int(c.This.State.(int32))
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(strconv.Itoa(int(c.This.State.(int32))))
			}},
			{Name: "valueOf", Sig: "(I)Ljava/lang/Integer;", Static: true, Body: func(c *Call) value.Value {
				return box(c, c.Args[0].Int32())
			}},
			{Name: "toString", Sig: "(I)Ljava/lang/String;", Static: true, Body: func(c *Call) value.Value {
				return c.NewString(strconv.Itoa(int(c.Args[0].Int32())))
			}},
			{Name: "parseInt", Sig: "(Ljava/lang/String;)I", Static: true, Body: func(c *Call) value.Value {
				s, ok := c.String(0)
				if !ok {
					return c.Throw("java/lang/NumberFormatException", "Cannot parse null string: null")
				}
				n, err := strconv.ParseInt(s, 10, 32)
				if err != nil {
					return c.Throw("java/lang/NumberFormatException", `For input string: "`+s+`"`)
				}
				return value.Int(int32(n))
			}},
		},
		Fields: []Field{
			{Name: "MAX_VALUE", Sig: "I", Get: func(*Call) value.Value { return value.Int(math.MaxInt32) }},
			{Name: "MIN_VALUE", Sig: "I", Get: func(*Call) value.Value { return value.Int(math.MinInt32) }},
		},
	}
}

func booleanClass() Class {
	// TRUE and FALSE are the canonical instances of this VM.
	var (
		canonical [2]*Instance
		once      [2]sync.Once
	)
	constant := func(b bool) func(c *Call) value.Value {
		i := 0
		if b {
			i = 1
		}
		return func(c *Call) value.Value {
			once[i].Do(func() { canonical[i] = c.New("java/lang/Boolean", b) })
			return c.Local(canonical[i])
		}
	}
	return Class{
		Name: "java/lang/Boolean",
		Methods: []Method{
			{Name: "<init>", Sig: "(Z)V", Body: func(c *Call) value.Value {
				c.This.State = c.Args[0].Bool()
				return value.Void()
			}},
			{Name: "booleanValue", Sig: "()Z", Body: func(c *Call) value.Value {
				return value.Boolean(c.This.State.(bool))
			}},
			{Name: "toString", Sig: "()Ljava/lang/String;", Body: func(c *Call) value.Value {
				return c.NewString(strconv.FormatBool(c.This.State.(bool)))
			}},
			{Name: "valueOf", Sig: "(Z)Ljava/lang/Boolean;", Static: true, Body: func(c *Call) value.Value {
				return constant(c.Args[0].Bool())(c)
			}},
			{Name: "parseBoolean", Sig: "(Ljava/lang/String;)Z", Static: true, Body: func(c *Call) value.Value {
				s, _ := c.String(0)
				return value.Boolean(strings.EqualFold(s, "true"))
			}},
		},
		Fields: []Field{
			{Name: "TRUE", Sig: "Ljava/lang/Boolean;", Get: constant(true)},
			{Name: "FALSE", Sig: "Ljava/lang/Boolean;", Get: constant(false)},
		},
	}
}

func systemClass() Class {
	getProperty := func(c *Call, def value.Value) value.Value {
		key, ok := c.String(0)
		if !ok {
			return c.Throw("java/lang/NullPointerException", "key can't be null")
		}
		if key == "" {
			return c.Throw("java/lang/IllegalArgumentException", "key can't be empty")
		}
		if v, ok := c.VM().Property(key); ok {
			return c.NewString(v)
		}
		return def
	}
	return Class{
		Name: "java/lang/System",
		Methods: []Method{
			{Name: "getProperty", Sig: "(Ljava/lang/String;)Ljava/lang/String;", Static: true,
				Body: func(c *Call) value.Value { return getProperty(c, value.Null()) }},
			{Name: "getProperty", Sig: "(Ljava/lang/String;Ljava/lang/String;)Ljava/lang/String;", Static: true,
				Body: func(c *Call) value.Value { return getProperty(c, c.Args[1]) }},
			{Name: "setProperty", Sig: "(Ljava/lang/String;Ljava/lang/String;)Ljava/lang/String;", Static: true,
				Body: func(c *Call) value.Value {
					key, ok := c.String(0)
					val, vok := c.String(1)
					if !ok || !vok {
						return c.Throw("java/lang/NullPointerException", "")
					}
					if prev, had := c.VM().SetProperty(key, val); had {
						return c.NewString(prev)
					}
					return value.Null()
				}},
			{Name: "lineSeparator", Sig: "()Ljava/lang/String;", Static: true, Body: func(c *Call) value.Value {
				sep, _ := c.VM().Property("line.separator")
				return c.NewString(sep)
			}},
			{Name: "currentTimeMillis", Sig: "()J", Static: true, Body: func(*Call) value.Value {
				return value.Long(time.Now().UnixMilli())
			}},
		},
	}
}

func mathClass() Class {
	return Class{
		Name: "java/lang/Math",
		Methods: []Method{
			{Name: "max", Sig: "(II)I", Static: true, Body: func(c *Call) value.Value {
				return value.Int(max(c.Args[0].Int32(), c.Args[1].Int32()))
			}},
			{Name: "max", Sig: "(JJ)J", Static: true, Body: func(c *Call) value.Value {
				return value.Long(max(c.Args[0].Int64(), c.Args[1].Int64()))
			}},
			{Name: "abs", Sig: "(I)I", Static: true, Body: func(c *Call) value.Value {
				i := c.Args[0].Int32()
				if i < 0 {
					i = -i
				}
				return value.Int(i)
			}},
			{Name: "sqrt", Sig: "(D)D", Static: true, Body: func(c *Call) value.Value {
				return value.Double(math.Sqrt(c.Args[0].Float64()))
			}},
			{Name: "floorDiv", Sig: "(II)I", Static: true, Body: func(c *Call) value.Value {
				x, y := c.Args[0].Int32(), c.Args[1].Int32()
				if y == 0 {
					return c.Throw("java/lang/ArithmeticException", "/ by zero")
				}
				q := x / y
				if (x%y != 0) && ((x < 0) != (y < 0)) {
					q--
				}
				return value.Int(q)
			}},
		},
		Fields: []Field{
			{Name: "PI", Sig: "D", Get: func(*Call) value.Value { return value.Double(math.Pi) }},
		},
	}
}
