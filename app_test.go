package snowfall

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	// Test changing state
	app.changeState(2)
	if app.nextState != State(2) {
		t.Errorf("The nextState should be set correctly.")
	}
	if !app.stateTransitioning {
		t.Errorf("The stateTransitioning flag should be true.")
	}

	// Test executing state change
	app.executeChangeState(2)
	if app.state != State(2) {
		t.Errorf("The app state should change correctly.")
	}
}

func TestApp_addResources(t *testing.T) {
	// Test setup
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	// Add a resource
	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1) // Try adding resource1 again, should panic
	})

	// Add a resource
	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	// Check that the resource was added
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestResource(t *testing.T) {
	app := newApp()
	r := NewMockResource1("one")
	app.addResources(r)

	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_SystemsResolveResourcesAndCommands(t *testing.T) {
	app := NewAppBuilder().Build()
	counter := &MockResource1{}
	app.addResources(counter)

	var frames int
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		frames++
		r.name = fmt.Sprintf("frame %d", frames)
		if frames == 3 {
			cmd.Exit()
		}
	}).InStage(Update))

	app.Run()
	assert.Equal(t, 3, frames)
	assert.Equal(t, "frame 3", counter.name)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource2) {}).InStage(Update))
	assert.Panics(t, func() { app.Step() })
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))

	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}
	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("custom")).InStage(custom))
	app.UseSystem(System(record("update")).InStage(Update))
	app.UseSystem(System(record("prelude")).InStage(Prelude))

	app.Step()
	assert.Equal(t, []string{"prelude", "update", "custom", "render"}, order)

	assert.Panics(t, func() { app.UseStage(Stage{Name: "x"}, BeforeStage(Stage{Name: "missing"})) })
}

func TestApp_StatefulRunReachesFinalState(t *testing.T) {
	const (
		loading State = iota
		exploring
		quit
	)
	app := NewAppBuilder().UseStates(loading, quit).Build()

	var log []string
	app.UseSystem(System(func() { log = append(log, "enter loading") }).InState(OnEnter(loading)))
	app.UseSystem(System(func(cmd *Commands) {
		log = append(log, "loading")
		cmd.ChangeState(exploring)
	}).InState(OnExecute(loading)))
	app.UseSystem(System(func() { log = append(log, "exit loading") }).InState(OnExit(loading)))
	app.UseSystem(System(func(cmd *Commands) {
		log = append(log, "exploring")
		cmd.ChangeState(quit)
	}).InState(OnExecute(exploring)))

	cleaned := false
	app.onCleanup(func() { cleaned = true })

	app.Run()
	assert.Equal(t, quit, app.State())
	assert.Equal(t, []string{"enter loading", "loading", "exit loading", "exploring"}, log)
	assert.True(t, cleaned)
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InState(OnExecute(1)))
	})
}

func TestApp_CleanupRunsInReverse(t *testing.T) {
	app := newApp()
	var order []int
	app.onCleanup(func() { order = append(order, 1) })
	app.onCleanup(func() { order = append(order, 2) })
	app.cleanup()
	assert.Equal(t, []int{2, 1}, order)
}

func TestEnsureSingleRenderer(t *testing.T) {
	app := newApp()
	ensureSingleRenderer(app, RendererWGPU)
	ensureSingleRenderer(app, RendererWGPU)
	assert.Panics(t, func() { ensureSingleRenderer(app, "other") })
}
