// Package jni is the cgo engine backend over the JNI invocation API.
//
// The package is empty unless built with cgo and the jni build tag:
//
//	export CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux"
//	export CGO_LDFLAGS="-L$JAVA_HOME/lib/server"
//	export LD_LIBRARY_PATH="$JAVA_HOME/lib/server"
//	go build -tags jni ./...
//
// Importing the package registers the backend as engine.JNIBackend, which
// engine.Default then prefers:
//
//	import _ "github.com/wippyai/jvm-bridge/engine/jni"
//
// A JavaVM created elsewhere (for example handed to JNI_OnLoad) is adopted
// with Wrap and passed to jvm.Inject. Wrap returns the same VM for the same
// pointer, so repeated injection of one JavaVM is recognised as such.
//
// # Signals
//
// HotSpot installs its own signal handlers. Pass "-Xrs" to reduce its use of
// OS signals when embedding into a Go process.
package jni
