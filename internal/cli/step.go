package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/pkg/dcel"
	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/geom"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/scene"
	"github.com/matzehuels/planar/pkg/sweep"
)

var (
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stepNormalStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	stepDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	stepErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// stepper advances an algorithm one step at a time.
type stepper interface {
	// Step performs the next step and describes it.
	Step() (string, error)
	Done() bool
	Progress() (done, total int)
	// State describes the current state, one line per entry.
	State() []string
}

// =============================================================================
// Line insertion
// =============================================================================

// lineStepper inserts one line per step.
type lineStepper struct {
	s     *dcel.Subdivision
	lines []geom.Line
	next  int
}

func newLineStepper(sc *scene.Scene, validate bool) (*lineStepper, error) {
	r, err := sc.Rect()
	if err != nil {
		return nil, err
	}
	s, err := dcel.NewRect(r, dcel.WithValidation(validate))
	if err != nil {
		return nil, pipeline.Classify(err)
	}
	return &lineStepper{s: s, lines: sc.GeomLines()}, nil
}

func (ls *lineStepper) Step() (string, error) {
	if ls.Done() {
		return "", nil
	}
	l := ls.lines[ls.next]
	before := len(ls.s.Faces())
	if err := ls.s.InsertLine(l); err != nil {
		return "", errors.FieldError("line", ls.next, pipeline.Classify(err))
	}
	ls.next++
	return fmt.Sprintf("line %d %v split %d face(s)", ls.next-1, l, len(ls.s.Faces())-before), nil
}

func (ls *lineStepper) Done() bool                  { return ls.next >= len(ls.lines) }
func (ls *lineStepper) Progress() (done, total int) { return ls.next, len(ls.lines) }

func (ls *lineStepper) State() []string {
	st := ls.s.Stats()
	return []string{
		fmt.Sprintf("bounds     %v", ls.s.Bounds()),
		fmt.Sprintf("vertices   %d", st.Vertices),
		fmt.Sprintf("half-edges %d", st.HalfEdges),
		fmt.Sprintf("faces      %d (%d bounded)", st.Faces, len(ls.s.BoundedFaces())),
	}
}

// =============================================================================
// Sweep
// =============================================================================

// sweepStepper processes one sweep event per step.
type sweepStepper struct {
	sw     *sweep.Sweeper
	total  int
	status []int
}

func newSweepStepper(sc *scene.Scene) (*sweepStepper, error) {
	sw, err := sweep.New(sc.GeomSegments())
	if err != nil {
		return nil, pipeline.Classify(err)
	}
	return &sweepStepper{sw: sw, total: sw.Pending()}, nil
}

func (ss *sweepStepper) Step() (string, error) {
	ev, ok := ss.sw.Step()
	if !ok {
		return "", nil
	}
	ss.status = ev.Status
	// Intersection events discovered during the sweep grow the total.
	ss.total = ss.sw.Steps() + ss.sw.Pending()
	if ev.Intersection != nil {
		return fmt.Sprintf("event %v: intersection of %v", ev.Point, ev.Intersection.Segments()), nil
	}
	return fmt.Sprintf("event %v", ev.Point), nil
}

func (ss *sweepStepper) Done() bool                  { return ss.sw.Done() }
func (ss *sweepStepper) Progress() (done, total int) { return ss.sw.Steps(), ss.total }

func (ss *sweepStepper) State() []string {
	return []string{
		fmt.Sprintf("status        %v", ss.status),
		fmt.Sprintf("intersections %d", len(ss.sw.Intersections())),
	}
}

// =============================================================================
// StepModel - Interactive stepping
// =============================================================================

// maxLog is the number of step descriptions kept on screen.
const maxLog = 12

// StepModel is the bubbletea model of the step command.
type StepModel struct {
	Title   string
	stepper stepper
	log     []string
	err     error
}

// NewStepModel creates a model over st.
func NewStepModel(title string, st stepper) StepModel {
	return StepModel{Title: title, stepper: st}
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "n", "right", "l", "enter":
		m = m.advance()
	case "r", "end":
		for m.err == nil && !m.stepper.Done() {
			m = m.advance()
		}
	}
	return m, nil
}

func (m StepModel) advance() StepModel {
	if m.err != nil || m.stepper.Done() {
		return m
	}
	desc, err := m.stepper.Step()
	if err != nil {
		m.err = err
		return m
	}
	m.log = append(m.log, desc)
	if len(m.log) > maxLog {
		m.log = m.log[len(m.log)-maxLog:]
	}
	return m
}

func (m StepModel) View() string {
	var b strings.Builder

	done, total := m.stepper.Progress()
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(stepDimStyle.Render(fmt.Sprintf("  [%d/%d]", done, total)))
	b.WriteString("\n")
	b.WriteString(stepDimStyle.Render("space: step  r: run all  q: quit"))
	b.WriteString("\n\n")

	for i, line := range m.log {
		if i == len(m.log)-1 {
			b.WriteString(stepCurrentStyle.Render("▸ " + line))
		} else {
			b.WriteString(stepNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if len(m.log) > 0 {
		b.WriteString("\n")
	}

	for _, line := range m.stepper.State() {
		b.WriteString(stepDimStyle.Render("  " + line))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(stepErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.stepper.Done():
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render(iconSuccess + " done"))
		b.WriteString("\n")
	}
	return b.String()
}

// Err returns the error that stopped stepping, if any.
func (m StepModel) Err() error { return m.err }

// =============================================================================
// Command
// =============================================================================

// stepCommand creates the step command.
func (c *CLI) stepCommand() *cobra.Command {
	var segments, plain, validate bool

	cmd := &cobra.Command{
		Use:   "step [scene]",
		Short: "Step through line insertions or a segment sweep",
		Long: `Step interactively through the construction of a scene's arrangement, one
line per step, or with --segments through the plane sweep over its segments,
one event per step. --plain prints every step without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			var st stepper
			title := "Line insertion"
			if segments {
				title = "Plane sweep"
				st, err = newSweepStepper(sc)
			} else {
				if len(sc.Lines) == 0 {
					return errors.New(errors.ErrCodeInvalidScene, "scene has no lines")
				}
				st, err = newLineStepper(sc, validate)
			}
			if err != nil {
				return err
			}
			if plain {
				return c.runSteps(cmd.Context(), st)
			}
			return c.runStepTUI(cmd.Context(), NewStepModel(title+" · "+args[0], st))
		},
	}

	cmd.Flags().BoolVar(&segments, "segments", false, "sweep the scene's segments instead of inserting its lines")
	cmd.Flags().BoolVar(&plain, "plain", false, "print each step instead of the interactive view")
	cmd.Flags().BoolVar(&validate, "validate", false, "check all invariants after every line")

	return cmd
}

// runSteps runs st to completion, printing each step.
func (c *CLI) runSteps(ctx context.Context, st stepper) error {
	for !st.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		desc, err := st.Step()
		if err != nil {
			return err
		}
		done, total := st.Progress()
		printInfo(c.out, "%d/%d %s", done, total, desc)
	}
	for _, line := range st.State() {
		printDetail(c.out, "%s", line)
	}
	return nil
}

func (c *CLI) runStepTUI(ctx context.Context, m StepModel) error {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(StepModel); ok {
		return fm.Err()
	}
	return nil
}
