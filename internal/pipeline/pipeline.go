// Package pipeline is the sequential interpreter over an ordered list of
// scene-building operations. Steps run strictly in order because later
// steps may reference earlier recorded outputs; any step failure aborts
// the whole run with no rollback.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/logger"
	"github.com/scenefold/scenefold/internal/notify"
	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
	"github.com/scenefold/scenefold/internal/store"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Operation is one step of a declarative build script.
type Operation struct {
	Step       int            `json:"step"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`
}

// Renderer produces the preview artifacts for a completed scene. Preview
// rendering is best-effort; a renderer failure never fails the run.
type Renderer func(s *scene.Scene) (markup string, stylesheet string, err error)

// Report describes a completed pipeline run.
type Report struct {
	SceneID  string
	Location string
	Files    []string
	Preview  *notify.Preview
}

// Runner executes operation lists. One Runner may serve many sessions;
// each Run gets its own build context.
type Runner struct {
	registry *op.Registry
	store    store.Store
	notifier notify.Notifier
	fonts    scene.FontResolver
	images   imagegen.Generator
	render   Renderer
	log      *logger.Logger
}

// NewRunner wires a Runner. The notifier and renderer may be nil.
func NewRunner(registry *op.Registry, st store.Store, notifier notify.Notifier, fonts scene.FontResolver, images imagegen.Generator, render Renderer, log *logger.Logger) *Runner {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Runner{
		registry: registry,
		store:    st,
		notifier: notifier,
		fonts:    fonts,
		images:   images,
		render:   render,
		log:      log,
	}
}

var placeholderPattern = regexp.MustCompile(`^\$output_of_step_(\d+)$`)

// Run executes the operation list against a fresh build context, then
// validates, persists and previews the resulting scene. On any failure the
// partially mutated context is discarded; there is no compensating undo.
func (r *Runner) Run(ctx context.Context, sceneID string, operations []Operation) (*Report, error) {
	bc := op.NewBuildContext(sceneID, r.fonts, r.images, r.log)
	total := len(operations)

	for _, operation := range operations {
		r.notifier.Publish(notify.Message{
			Type:      notify.TypeProgress,
			SceneID:   sceneID,
			Step:      operation.Step,
			Total:     total,
			Operation: operation.Operation,
		})
		r.log.WithFields(map[string]any{
			"scene_id":  sceneID,
			"step":      operation.Step,
			"operation": operation.Operation,
		}).Debug("executing operation")

		result, err := r.runStep(ctx, bc, operation)
		if err != nil {
			return nil, r.fail(sceneID, operation, err)
		}
		if result != nil && result.Output != nil {
			bc.Outputs[operation.Step] = result.Output
		}
	}

	if err := bc.Scene().Validate(); err != nil {
		return nil, r.fail(sceneID, Operation{}, err)
	}

	saved, err := r.store.SaveScene(bc.Scene(), sceneID)
	if err != nil {
		return nil, r.fail(sceneID, Operation{}, err)
	}

	report := &Report{SceneID: sceneID, Location: saved.Location, Files: saved.Files}
	if r.render != nil {
		markup, stylesheet, renderErr := r.render(bc.Scene())
		if renderErr != nil {
			r.log.Error(renderErr, "preview render failed, continuing without preview")
		} else {
			report.Preview = &notify.Preview{Markup: markup, Stylesheet: stylesheet}
		}
	}

	r.notifier.Publish(notify.Message{
		Type:     notify.TypeCompleted,
		SceneID:  sceneID,
		Location: report.Location,
		Files:    report.Files,
		Preview:  report.Preview,
	})
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, bc *op.BuildContext, operation Operation) (*op.Result, error) {
	params, err := resolvePlaceholders(operation.Parameters, bc.Outputs)
	if err != nil {
		return nil, err
	}

	handler, err := r.registry.Get(operation.Operation)
	if err != nil {
		return nil, err
	}

	target := handler.Params()
	if err := decodeParams(params, target); err != nil {
		return nil, err
	}
	if err := validateParams(target); err != nil {
		return nil, err
	}

	return handler.Apply(ctx, bc, target)
}

func (r *Runner) fail(sceneID string, operation Operation, err error) error {
	r.notifier.Publish(notify.Message{
		Type:      notify.TypeFailed,
		SceneID:   sceneID,
		Step:      operation.Step,
		Operation: operation.Operation,
		Error:     err.Error(),
	})
	if operation.Operation != "" {
		return fmt.Errorf("step %d (%s): %w", operation.Step, operation.Operation, err)
	}
	return err
}

// resolvePlaceholders walks the parameter structure and replaces string
// values of the exact form $output_of_step_N with the recorded output of
// step N. Referencing a step without a recorded output is a validation
// error.
func resolvePlaceholders(params map[string]any, outputs map[int]any) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	resolved, err := resolveValue(params, outputs)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]any), nil
}

func resolveValue(value any, outputs map[int]any) (any, error) {
	switch v := value.(type) {
	case string:
		match := placeholderPattern.FindStringSubmatch(v)
		if match == nil {
			return v, nil
		}
		step, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, scenefolderrors.NewValidationError("parameters", fmt.Sprintf("invalid placeholder %q", v), err)
		}
		output, ok := outputs[step]
		if !ok {
			return nil, scenefolderrors.NewValidationError("parameters", fmt.Sprintf("step %d produced no recorded output", step), nil)
		}
		return output, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			resolved, err := resolveValue(inner, outputs)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			resolved, err := resolveValue(inner, outputs)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}

func decodeParams(params map[string]any, target any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return scenefolderrors.NewValidationError("parameters", "parameters are not serializable", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return scenefolderrors.NewValidationError("parameters", fmt.Sprintf("malformed parameters: %v", err), err)
	}
	return nil
}
