// Package op defines the contract between the operation pipeline and its
// handlers: the build context handlers mutate, the typed result they
// return, and the closed registry they are dispatched through.
package op

import (
	"context"

	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/logger"
	"github.com/scenefold/scenefold/internal/scene"
)

// Result is the explicit success value of a handler. Output, when non-nil,
// is recorded under the step number for later $output_of_step_N
// references.
type Result struct {
	Output any
}

// BuildContext is the transient state of one in-progress scene build. It
// is created at the start of a pipeline run and discarded at completion or
// failure; it is never persisted directly.
type BuildContext struct {
	SceneID  string
	Data     *scene.SceneData
	Template *scene.Template
	Theme    *scene.Theme

	// Layers maps caller-assigned layer names to element IDs so later
	// operations can address earlier ones by name.
	Layers map[string]string

	// Outputs maps step numbers to recorded handler outputs.
	Outputs map[int]any

	Fonts  scene.FontResolver
	Images imagegen.Generator
	Log    *logger.Logger
}

// NewBuildContext creates the context for one pipeline run.
func NewBuildContext(sceneID string, fonts scene.FontResolver, images imagegen.Generator, log *logger.Logger) *BuildContext {
	sc := scene.NewScene(sceneID)
	return &BuildContext{
		SceneID:  sceneID,
		Data:     sc.Data,
		Template: sc.Template,
		Theme:    sc.Theme,
		Layers:   make(map[string]string),
		Outputs:  make(map[int]any),
		Fonts:    fonts,
		Images:   images,
		Log:      log,
	}
}

// Scene returns the triple under construction as one unit.
func (bc *BuildContext) Scene() *scene.Scene {
	return &scene.Scene{Data: bc.Data, Template: bc.Template, Theme: bc.Theme}
}

// Handler is one operation of the closed registry.
//
// Params returns a fresh pointer to the handler's parameter struct; the
// pipeline decodes the step's resolved parameter map into it and validates
// it before dispatch, so Apply receives parameters that already satisfy
// the struct's validate tags. Apply may read and write the build context
// freely and returns either a Result or a typed error; any error aborts
// the whole run.
type Handler interface {
	Name() string
	Params() any
	Apply(ctx context.Context, bc *BuildContext, params any) (*Result, error)
}
