// Package jvmtest provides an in-memory engine backend whose classes are
// defined in Go.
//
// The VM behaves like a JNI implementation where the bridge can observe it:
// per-thread attachments, local references freed on detach, global
// references that must be deleted exactly once, and exceptions left pending
// until cleared. Misuse that a real VM would punish with a crash is counted
// in Stats instead, so tests can assert that none happened.
//
// Importing the package registers it with the engine under the name
// "jvmtest":
//
//	vm := jvmtest.New(jvmtest.WithProperty("user.name", "test"))
//	err := vm.Define(jvmtest.Class{
//	    Name: "com/example/Greeter",
//	    Methods: []jvmtest.Method{{
//	        Name:   "greet",
//	        Sig:    "(Ljava/lang/String;)Ljava/lang/String;",
//	        Static: true,
//	        Body: func(c *jvmtest.Call) value.Value {
//	            name, _ := c.String(0)
//	            return c.NewString("hello " + name)
//	        },
//	    }},
//	})
//
// Built-in classes cover java.lang (Object, Class, String, Throwable and the
// common exceptions, Integer, Boolean, System, Math), java.io.File over the
// host filesystem, and java.net.InetSocketAddress.
package jvmtest
