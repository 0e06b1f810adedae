// Package descriptor describes JVM types and members for lookup.
//
// A Class is an immutable type descriptor, either one of the fixed primitive
// types or a reference type named by its slash-separated binary name:
//
//	file := descriptor.Named("java/io/File")
//	ints := descriptor.Int.ArrayOf() // [I
//
// Constructors and methods are described with fluent finders. Parameter order
// must match the declaration order of the target member:
//
//	ctor := file.Constructor().Parameter(descriptor.String)
//
//	exists := file.Method("exists").Returns(descriptor.Boolean)
//
// MethodFinder.Returns is the only way to finish a method description; it
// yields an immutable MethodSignature. Signatures use the JVM's own mangled
// descriptor grammar, the exact strings handed to GetMethodID:
//
//	Type        Code
//	──────────────────────────────
//	void        V
//	boolean     Z
//	byte        B
//	char        C
//	short       S
//	int         I
//	long        J
//	float       F
//	double      D
//	reference   Ljava/lang/String;
//	array       [<element code>
//	method      (<parameter codes>)<return code>
//
// ParseType and ParseMethod decode the same grammar.
package descriptor
