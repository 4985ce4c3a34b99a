package cursorfx

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

func TestApp_addResources(t *testing.T) {
	app := NewAppBuilder().Build()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem())

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem())
}

func TestApp_addResources_RejectsValues(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Panics(t, func() {
		app.addResources(MockResource1{name: "value"})
	})
}

func TestResource(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(NewMockResource1("one"))

	r, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, "one", r.name)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_Frame_RunsStagesInOrder(t *testing.T) {
	var order []string
	app := NewAppBuilder().Build()
	app.addResources(NewMockResource1("r"))

	app.UseSystem(System(func(r *MockResource1) { order = append(order, "render") }).InStage(Render))
	app.UseSystem(System(func(r *MockResource1) { order = append(order, "update") }))
	app.UseSystem(System(func(r *MockResource1) { order = append(order, "prelude") }).InStage(Prelude))
	app.UseSystem(System(func(r *MockResource1) { order = append(order, "post-render") }).InStage(PostRender))

	app.Frame()
	assert.Equal(t, []string{"prelude", "update", "render", "post-render"}, order)
	assert.Equal(t, uint64(1), app.Frames())

	app.Frame()
	assert.Len(t, order, 8)
	assert.Equal(t, uint64(2), app.Frames())
}

func TestApp_Frame_ResolvesCommands(t *testing.T) {
	app := NewAppBuilder().Build()
	var got *Commands
	app.UseSystem(System(func(cmd *Commands) { got = cmd }))

	app.Frame()
	require.NotNil(t, got)
	assert.Same(t, app, got.app)
}

func TestApp_Frame_PanicsOnMissingResource(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource2) {}))

	assert.Panics(t, func() { app.Frame() })
}

func TestApp_Logger_DefaultsToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	logger := app.Logger()
	require.NotNil(t, logger)
	assert.False(t, logger.DebugEnabled())

	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
}
