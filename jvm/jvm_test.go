package jvm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
	"github.com/wippyai/jvm-bridge/jvmtest"
)

func TestInject(t *testing.T) {
	j, vm := install(t, true)
	assert.True(t, Created())
	assert.True(t, j.Exceptions())
	assert.Equal(t, engine.V1_6, j.Version())

	again, err := Inject(vm, engine.V1_8, false)
	require.NoError(t, err, "injecting the same VM is a no-op")
	assert.Same(t, j, again)
	assert.True(t, again.Exceptions(), "the first injection's settings stay")

	_, err = Inject(jvmtest.New(), engine.V1_6, true)
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	got, err := Get()
	require.NoError(t, err)
	assert.Same(t, j, got)
}

func TestInject_Invalid(t *testing.T) {
	reset()
	t.Cleanup(reset)

	_, err := Inject(nil, engine.V1_6, false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	_, err = Inject(jvmtest.New(), engine.Version(3), false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
	assert.False(t, Created())
}

func TestCreate_Once(t *testing.T) {
	requireInMemoryDefault(t)
	reset()
	t.Cleanup(reset)

	j, err := Create([]string{"-Dbridge.test=create"}, engine.V1_6, false)
	require.NoError(t, err)

	vm, ok := j.VM().(*jvmtest.VM)
	require.True(t, ok, "the in-memory backend is the only one registered in tests")
	prop, _ := vm.Property("bridge.test")
	assert.Equal(t, "create", prop)

	_, err = Create(nil, engine.V1_6, false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	_, err = Inject(jvmtest.New(), engine.V1_6, false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	again, err := Inject(vm, engine.V1_6, false)
	require.NoError(t, err)
	assert.Same(t, j, again)
}

func TestCreate_InvalidVersion(t *testing.T) {
	reset()
	t.Cleanup(reset)

	_, err := Create(nil, engine.Version(0x10), false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
	assert.False(t, Created())
}

func TestCreate_BackendFailure(t *testing.T) {
	requireInMemoryDefault(t)
	reset()
	t.Cleanup(reset)

	_, err := Create([]string{"not-an-option"}, engine.V1_6, false)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
	assert.False(t, Created(), "a failed create leaves no VM behind")
}

func TestGet_Lazy(t *testing.T) {
	requireInMemoryDefault(t)
	reset()
	t.Cleanup(reset)
	assert.False(t, Created())

	var wg sync.WaitGroup
	got := make([]*JVM, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := Get()
			assert.NoError(t, err)
			got[i] = j
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, j := range got[1:] {
		assert.Same(t, got[0], j, "concurrent first Get embeds exactly one VM")
	}
	assert.False(t, got[0].Exceptions())
	assert.Equal(t, engine.DefaultVersion, got[0].Version())
}

func TestSingleton_MixedEntryPoints(t *testing.T) {
	requireInMemoryDefault(t)
	t.Cleanup(reset)
	logs := observe(t, zapcore.InfoLevel)

	cfg := DefaultConfig()
	cfg.Backend = jvmtest.BackendName

	for round := range 20 {
		reset()
		logs.TakeAll()
		injected := jvmtest.New()

		var wg sync.WaitGroup
		results := make(chan *JVM, 24)
		for i := range 24 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var j *JVM
				var err error
				switch i % 4 {
				case 0:
					j, err = Get()
				case 1:
					j, err = Create(nil, engine.V1_8, true)
				case 2:
					j, err = CreateFromConfig(cfg)
				case 3:
					j, err = Inject(injected, engine.V1_6, false)
				}
				if err != nil {
					assert.ErrorIs(t, err, errors.ErrConfiguration)
					return
				}
				results <- j
			}()
		}
		wg.Wait()
		close(results)

		first := instance.Load()
		require.NotNil(t, first, "round %d", round)
		for j := range results {
			assert.Same(t, first, j, "round %d", round)
		}
		embedded := logs.FilterMessage("JVM created").Len() + logs.FilterMessage("JVM injected").Len()
		assert.Equal(t, 1, embedded, "round %d: exactly one VM is embedded", round)
	}
}

func TestCreateFromConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	cfg := DefaultConfig()
	cfg.Backend = jvmtest.BackendName
	cfg.Version = "1.8"
	cfg.Exceptions = true
	cfg.Attach = AttachNormal
	cfg.Properties = map[string]string{"app.mode": "config"}

	j, err := CreateFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, j.Exceptions())
	assert.Equal(t, engine.V1_8, j.Version())

	vm := j.VM().(*jvmtest.VM)
	mode, _ := vm.Property("app.mode")
	assert.Equal(t, "config", mode)

	env, err := j.Attach()
	require.NoError(t, err)
	daemon, attached := vm.IsDaemon()
	env.Release()
	assert.True(t, attached)
	assert.False(t, daemon, "attach mode comes from the configuration")

	_, err = CreateFromConfig(cfg)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestCreateFromConfig_UnknownBackend(t *testing.T) {
	reset()
	t.Cleanup(reset)

	cfg := DefaultConfig()
	cfg.Backend = "missing"
	_, err := CreateFromConfig(cfg)
	assert.ErrorIs(t, err, errors.ErrConfiguration)
	assert.False(t, Created())
}
