// Command jvmrun embeds a JVM and runs a smoke test or a single static
// method call against it.
//
//	jvmrun -smoke
//	jvmrun -class java.lang.Integer -method parseInt -sig '(Ljava/lang/String;)I' -arg 42
//	jvmrun -backend jvmtest -i
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wippyai/jvm-bridge/engine"
	_ "github.com/wippyai/jvm-bridge/engine/jni"
	"github.com/wippyai/jvm-bridge/jvm"
	_ "github.com/wippyai/jvm-bridge/jvmtest"
)

// properties collects repeated -D key=value flags.
type properties map[string]string

func (p properties) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (p properties) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	p[k] = v
	return nil
}

// arguments collects repeated -arg flags.
type arguments []string

func (a *arguments) String() string { return strings.Join(*a, ",") }

func (a *arguments) Set(s string) error {
	*a = append(*a, s)
	return nil
}

func main() {
	props := properties{}
	var args arguments
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		backend     = flag.String("backend", "", "VM backend (registered: "+strings.Join(engine.Backends(), ", ")+")")
		version     = flag.String("version", "", "JNI version, 1.1 to 1.8")
		exceptions  = flag.Bool("exceptions", false, "Return Java exceptions as errors instead of logging them")
		smokeTest   = flag.Bool("smoke", false, "Create a temp directory through java.io.File and check it exists")
		className   = flag.String("class", "", "Class of the static method to call")
		methodName  = flag.String("method", "", "Static method to call")
		sig         = flag.String("sig", "", "Method descriptor, e.g. (II)I")
		schema      = flag.Bool("schema", false, "Print the configuration JSON Schema and exit")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Var(props, "D", "System property key=value (repeatable)")
	flag.Var(&args, "arg", "Method argument (repeatable)")
	flag.Parse()

	if *schema {
		out, err := json.MarshalIndent(jvm.Schema(), "", "  ")
		if err != nil {
			fail(err)
		}
		fmt.Println(string(out))
		return
	}

	if !*smokeTest && !*interactive && *className == "" {
		fmt.Fprintln(os.Stderr, "Usage: jvmrun [-config file] [-backend name] [-D k=v ...] -smoke")
		fmt.Fprintln(os.Stderr, "       jvmrun ... -class name -method name -sig descriptor [-arg value ...]")
		fmt.Fprintln(os.Stderr, "       jvmrun ... -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       jvmrun -schema")
		os.Exit(1)
	}

	log, err := newLogger(*verbose, *interactive)
	if err != nil {
		fail(err)
	}
	defer log.Sync()
	jvm.SetLogger(log.Named("jvm"))
	engine.SetLogger(log.Named("engine"))

	cfg, err := loadConfig(*configPath, *backend, *version, *exceptions, props)
	if err != nil {
		fail(err)
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fail(err)
		}
		return
	}

	j, err := jvm.CreateFromConfig(cfg)
	if err != nil {
		fail(err)
	}

	if *smokeTest {
		ok, err := smoke()
		shutdown(j)
		if err != nil {
			fail(err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "smoke: directory not visible to the VM")
			os.Exit(1)
		}
		fmt.Println("smoke: ok")
		return
	}

	call := staticCall{class: *className, method: *methodName, sig: *sig, args: args}
	result, err := call.run(j)
	shutdown(j)
	if err != nil {
		fail(err)
	}
	fmt.Println(result)
}

// loadConfig reads path, if set, and applies flag overrides.
func loadConfig(path, backend, version string, exceptions bool, props properties) (jvm.Config, error) {
	cfg := jvm.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = jvm.LoadConfig(path); err != nil {
			return jvm.Config{}, err
		}
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if version != "" {
		cfg.Version = version
	}
	if exceptions {
		cfg.Exceptions = true
	}
	for k, v := range props {
		if cfg.Properties == nil {
			cfg.Properties = make(map[string]string)
		}
		cfg.Properties[k] = v
	}
	return cfg, cfg.Validate()
}

// shutdown runs the exit hooks of backends that have them.
func shutdown(j *jvm.JVM) {
	if vm, ok := j.VM().(interface{ Exit() }); ok {
		vm.Exit()
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
