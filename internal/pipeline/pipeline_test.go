package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scenefold/scenefold/internal/notify"
	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/ops"
	"github.com/scenefold/scenefold/internal/render"
	"github.com/scenefold/scenefold/internal/scene"
	"github.com/scenefold/scenefold/internal/store"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

type memStore struct {
	saved *scene.Scene
}

func (m *memStore) SaveScene(s *scene.Scene, id string) (*store.SavedScene, error) {
	m.saved = s
	return &store.SavedScene{Location: "mem://" + id, Files: []string{"data.json", "template.json", "theme.json", "scene.json"}}, nil
}

func (m *memStore) LoadScene(id string) (*scene.Scene, error) {
	return m.saved, nil
}

type staticResolver struct{ url string }

func (r staticResolver) ResolveFont(ctx context.Context, family string) (string, error) {
	return r.url, nil
}

type stubHandler struct {
	name   string
	calls  *[]string
	output any
	err    error
	got    map[string]any
}

type stubParams struct {
	URL string `json:"url,omitempty"`
}

func (h *stubHandler) Name() string { return h.name }
func (h *stubHandler) Params() any  { return &stubParams{} }
func (h *stubHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	if h.calls != nil {
		*h.calls = append(*h.calls, h.name)
	}
	if h.got != nil {
		h.got["url"] = params.(*stubParams).URL
	}
	if h.err != nil {
		return nil, h.err
	}
	return &op.Result{Output: h.output}, nil
}

func TestResolvePlaceholders(t *testing.T) {
	t.Parallel()

	outputs := map[int]any{2: "https://x/img.png"}

	resolved, err := resolvePlaceholders(map[string]any{
		"input_image": "$output_of_step_2",
		"plain":       "hello",
		"nested":      map[string]any{"deep": "$output_of_step_2"},
		"list":        []any{"$output_of_step_2", 7.0},
	}, outputs)
	require.NoError(t, err)
	require.Equal(t, "https://x/img.png", resolved["input_image"])
	require.Equal(t, "hello", resolved["plain"])
	require.Equal(t, "https://x/img.png", resolved["nested"].(map[string]any)["deep"])
	require.Equal(t, "https://x/img.png", resolved["list"].([]any)[0])
	require.Equal(t, 7.0, resolved["list"].([]any)[1])

	_, err = resolvePlaceholders(map[string]any{"x": "$output_of_step_9"}, outputs)
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	// Placeholders are whole-string matches only.
	resolved, err = resolvePlaceholders(map[string]any{"x": "prefix $output_of_step_2"}, outputs)
	require.NoError(t, err)
	require.Equal(t, "prefix $output_of_step_2", resolved["x"])
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	var calls []string
	registry := op.NewRegistry()
	registry.MustRegister(
		&stubHandler{name: "one", calls: &calls},
		&stubHandler{name: "two", calls: &calls},
		&stubHandler{name: "three", calls: &calls, err: scenefolderrors.NewValidationError("width", "must be positive", nil)},
		&stubHandler{name: "four", calls: &calls},
		&stubHandler{name: "five", calls: &calls},
	)

	collector := &notify.Collector{}
	runner := NewRunner(registry, &memStore{}, collector, nil, nil, nil, nil)

	operations := []Operation{
		{Step: 1, Operation: "one"},
		{Step: 2, Operation: "two"},
		{Step: 3, Operation: "three"},
		{Step: 4, Operation: "four"},
		{Step: 5, Operation: "five"},
	}

	_, err := runner.Run(context.Background(), "s1", operations)
	require.Error(t, err)
	require.Contains(t, err.Error(), "step 3 (three)")
	require.Equal(t, []string{"one", "two", "three"}, calls)

	messages := collector.Messages()
	last := messages[len(messages)-1]
	require.Equal(t, notify.TypeFailed, last.Type)
	require.Equal(t, 3, last.Step)
	require.Equal(t, "three", last.Operation)
}

func TestRunResolvesRecordedOutputs(t *testing.T) {
	t.Parallel()

	consumer := &stubHandler{name: "consume", got: map[string]any{}}
	registry := op.NewRegistry()
	registry.MustRegister(
		&stubHandler{name: "emit", output: "https://cdn.example/out.png"},
		consumer,
		&stubHandler{name: "canvas_stub"},
	)

	runner := NewRunner(registry, &memStore{}, nil, nil, nil, nil, nil)

	_, err := runner.Run(context.Background(), "s1", []Operation{
		{Step: 1, Operation: "emit"},
		{Step: 2, Operation: "consume", Parameters: map[string]any{"url": "$output_of_step_1"}},
	})
	// The run fails final validation (no canvas), but both steps executed.
	require.Error(t, err)
	require.Equal(t, "https://cdn.example/out.png", consumer.got["url"])
}

func TestRunUnknownOperation(t *testing.T) {
	t.Parallel()

	runner := NewRunner(op.NewRegistry(), &memStore{}, nil, nil, nil, nil, nil)

	_, err := runner.Run(context.Background(), "s1", []Operation{{Step: 1, Operation: "teleport"}})
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, err.Error(), "teleport")
}

func TestRunFailsStructuralValidation(t *testing.T) {
	t.Parallel()

	registry := op.NewRegistry()
	registry.MustRegister(&stubHandler{name: "noop"})

	collector := &notify.Collector{}
	runner := NewRunner(registry, &memStore{}, collector, nil, nil, nil, nil)

	// No create_canvas step, so the finished scene has no canvas size.
	_, err := runner.Run(context.Background(), "s1", []Operation{{Step: 1, Operation: "noop"}})
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	last := collector.Messages()[len(collector.Messages())-1]
	require.Equal(t, notify.TypeFailed, last.Type)
}

func TestRunScenario(t *testing.T) {
	t.Parallel()

	st := &memStore{}
	collector := &notify.Collector{}
	renderer := render.New(nil)
	runner := NewRunner(
		ops.DefaultRegistry(),
		st,
		collector,
		staticResolver{url: "fonts/stub.otf"},
		nil,
		renderer.Render,
		nil,
	)

	report, err := runner.Run(context.Background(), "scene-1", []Operation{
		{Step: 1, Operation: "create_canvas", Parameters: map[string]any{
			"width": 1240, "height": 1748, "background_color": "#FFFF00",
		}},
		{Step: 2, Operation: "add_text_layer", Parameters: map[string]any{
			"layer_name": "title", "text": "Hello", "anchor": "center",
		}},
	})
	require.NoError(t, err)
	require.NotNil(t, report.Preview)

	require.Len(t, st.saved.Template.Elements, 2)
	require.Equal(t, scene.ElementShape, st.saved.Template.Elements[0].Type)
	require.Equal(t, "100%", st.saved.Template.Elements[0].Style["width"])
	require.Len(t, st.saved.Theme.ColorPalette, 1)
	require.Equal(t, uint8(255), st.saved.Theme.ColorPalette[0].R)

	title := st.saved.Template.Elements[1]
	require.Equal(t, scene.ElementDataItem, title.Type)
	require.Equal(t, "50%", title.Style["left"])
	require.Equal(t, "50%", title.Style["top"])
	require.Equal(t, "translate(-50%, -50%)", title.Style["transform"])

	messages := collector.Messages()
	require.Equal(t, notify.TypeProgress, messages[0].Type)
	require.Equal(t, 2, messages[0].Total)
	require.Equal(t, notify.TypeCompleted, messages[len(messages)-1].Type)
	require.Contains(t, report.Preview.Markup, "Hello")
	require.Contains(t, report.Preview.Stylesheet, "rgba(255, 255, 0, 1)")
}
