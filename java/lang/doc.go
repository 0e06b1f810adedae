// Package lang wraps the java.lang classes the bridge needs directly:
// Throwable, System, Integer and Boolean.
//
// Every wrapper embeds a *jvm.Object and so owns one global reference;
// Release it when done. Members are resolved on first use against the JVM
// returned by jvm.Get.
package lang
