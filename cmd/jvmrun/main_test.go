package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/jvm"
	"github.com/wippyai/jvm-bridge/jvmtest"
)

var (
	vm  *jvmtest.VM
	jvu *jvm.JVM
)

func TestMain(m *testing.M) {
	vm = jvmtest.New(jvmtest.WithProperty("app.name", "jvmrun"))
	var err error
	if jvu, err = jvm.Inject(vm, engine.V1_8, true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestStaticCall(t *testing.T) {
	tests := []struct {
		call staticCall
		want string
	}{
		{staticCall{class: "java.lang.Integer", method: "parseInt", sig: "(Ljava/lang/String;)I", args: []string{"-42"}}, "-42"},
		{staticCall{class: "java/lang/Math", method: "max", sig: "(II)I", args: []string{"3", "0x10"}}, "16"},
		{staticCall{class: "java.lang.Math", method: "sqrt", sig: "(D)D", args: []string{"2.25"}}, "1.5"},
		{staticCall{class: "java.lang.System", method: "getProperty", sig: "(Ljava/lang/String;)Ljava/lang/String;", args: []string{"app.name"}}, `"jvmrun"`},
		{staticCall{class: "java.lang.System", method: "getProperty", sig: "(Ljava/lang/String;)Ljava/lang/String;", args: []string{"jvmrun.unset"}}, "null"},
		{staticCall{class: "java.lang.Integer", method: "valueOf", sig: "(I)Ljava/lang/Integer;", args: []string{"7"}}, "7"},
		{staticCall{class: "java.lang.Boolean", method: "parseBoolean", sig: "(Ljava/lang/String;)Z", args: []string{"TRUE"}}, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.call.String(), func(t *testing.T) {
			got, err := tt.call.run(jvu)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Zero(t, vm.Stats().LiveLocals)
}

func TestStaticCall_Errors(t *testing.T) {
	parseInt := staticCall{class: "java.lang.Integer", method: "parseInt", sig: "(Ljava/lang/String;)I"}

	_, err := parseInt.run(jvu)
	assert.ErrorIs(t, err, errors.ErrArgumentMismatch)

	parseInt.args = []string{"forty"}
	_, err = parseInt.run(jvu)
	assert.ErrorIs(t, err, errors.ErrException)

	maximum := staticCall{class: "java.lang.Math", method: "max", sig: "(II)I", args: []string{"1", "x"}}
	_, err = maximum.run(jvu)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	bad := staticCall{class: "java.lang.Math", method: "max", sig: "(II"}
	_, err = bad.run(jvu)
	assert.Error(t, err)

	missing := staticCall{class: "java.lang.Math", method: "min", sig: "(II)I", args: []string{"1", "2"}}
	_, err = missing.run(jvu)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	file := staticCall{class: "java.lang.Boolean", method: "valueOf", sig: "(Ljava/io/File;)Z", args: []string{"/tmp"}}
	_, err = file.run(jvu)
	assert.Error(t, err)

	assert.Zero(t, vm.Stats().LiveLocals)
	assert.Zero(t, vm.Stats().PendingViolations)
}

func TestSmoke(t *testing.T) {
	ok, err := smoke()
	require.NoError(t, err)
	assert.True(t, ok)

	paths := vm.DeleteOnExit()
	require.NotEmpty(t, paths)
	dir := paths[len(paths)-1]
	assert.Equal(t, "jvmrun-", filepath.Base(dir)[:len("jvmrun-")])

	shutdown(jvu)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "the directory is deleted on exit")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.4\"\nproperties:\n  a: file\n"), 0o600))

	props := properties{}
	require.NoError(t, props.Set("a=flag"))
	require.NoError(t, props.Set("b=c=d"))
	assert.Error(t, props.Set("novalue"))
	assert.Error(t, props.Set("=x"))

	cfg, err := loadConfig(path, "jvmtest", "", true, props)
	require.NoError(t, err)
	assert.Equal(t, "jvmtest", cfg.Backend)
	assert.Equal(t, "1.4", cfg.Version)
	assert.True(t, cfg.Exceptions)
	assert.Equal(t, map[string]string{"a": "flag", "b": "c=d"}, cfg.Properties)

	_, err = loadConfig("", "", "2.0", false, properties{})
	assert.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestInteractive(t *testing.T) {
	m := newInteractiveModel(jvm.DefaultConfig())
	assert.Equal(t, "Starting JVM...", m.View())

	m.Update(createdMsg{jvm: jvu})
	assert.Contains(t, m.View(), "java.lang.Integer.parseInt")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateInputCall, m.state)
	assert.Equal(t, presets[1], m.formCall())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, stateShowResult, m.state)
	require.NoError(t, m.err)
	assert.Equal(t, "9", m.result)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateInputCall, m.state)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateSelectCall, m.state)
}
