// Package session runs the interactive menu over a loaded index.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/internal/logging"
	"github.com/mlwelles/castIndex/internal/metrics"
	"github.com/mlwelles/castIndex/persist"
	"github.com/mlwelles/castIndex/query"
	"github.com/mlwelles/castIndex/record"
)

const menu = "Please select an option:\n" +
	"1) Query by movies\n" +
	"2) Query by actor\n" +
	"3) Insert a new movie\n" +
	"4) Save and Exit\n" +
	"5) Exit\n" +
	"6) Show unsaved changes\n" +
	"7) Statistics\n\n"

const (
	promptMovies = "Please select two movies and an operator(&,|,^) separated with ','\n"
	promptActor  = "Name of actor: "
	promptInsert = "Style: Name of movie, Actor 1, Actor 2... \n"
)

// maxLineBytes bounds a single line of input.
const maxLineBytes = 16 << 20

const (
	msgUnknownMovie     = "One of the movies is not in our database"
	msgUnknownActor     = "That actor is not in our database"
	msgMalformed        = "Your input is wrong, please check you have the right number of values"
	msgInvalidOperator  = "Your operator does not exist as an option"
	msgInsufficientData = "You did not put in any actors"
	msgEmptyGroup       = "There are no actors in this group"
	msgNoChanges        = "No unsaved changes"
)

// Saver writes an index to a location.
type Saver interface {
	Save(ctx context.Context, location string, ix *index.Index) (int, error)
}

// Controller reads menu choices from an input stream and applies them to an
// index. It is not safe for concurrent use, and Run may be called only once.
type Controller struct {
	ix       *index.Index
	engine   *query.Engine
	saver    Saver
	output   string
	baseline []byte

	in      *bufio.Scanner
	lines   <-chan string
	readErr error
	out     io.Writer

	logger  *logging.Logger
	metrics metrics.Collector
	errs    *color.Color
	heading *color.Color
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l == nil {
			l = logging.NoopLogger()
		}
		c.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. Pass nil to disable metrics.
func WithMetricsCollector(m metrics.Collector) Option {
	return func(c *Controller) {
		if m == nil {
			m = metrics.Noop{}
		}
		c.metrics = m
	}
}

// WithColor forces colored output on or off. By default color follows
// color.NoColor.
func WithColor(enabled bool) Option {
	return func(c *Controller) {
		for _, col := range []*color.Color{c.errs, c.heading} {
			if enabled {
				col.EnableColor()
			} else {
				col.DisableColor()
			}
		}
	}
}

// New returns a Controller over ix that saves to output through saver. The
// current contents of ix are the baseline for unsaved-change diffs.
func New(ix *index.Index, saver Saver, output string, in io.Reader, out io.Writer, optFns ...Option) *Controller {
	c := &Controller{
		ix:       ix,
		saver:    saver,
		output:   output,
		baseline: persist.Marshal(ix),
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logging.NoopLogger(),
		metrics:  metrics.Noop{},
		errs:     color.New(color.FgRed),
		heading:  color.New(color.Bold),
	}
	c.in.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for _, fn := range optFns {
		if fn != nil {
			fn(c)
		}
	}
	c.engine = query.New(ix, query.WithLogger(c.logger), query.WithMetricsCollector(c.metrics))
	return c
}

// Run shows the menu until the user exits, saves, or input ends. A failed
// save is reported and the menu is shown again. Run returns ctx.Err() as soon
// as ctx is canceled, even while waiting for input, and returns read errors
// other than end of input.
func (c *Controller) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	c.lines = c.read(done)

	err := c.loop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Controller) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.prompt(ctx, menu)
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			line, err := c.prompt(ctx, promptMovies)
			if err != nil {
				return err
			}
			c.queryMovies(ctx, line)
		case "2":
			line, err := c.prompt(ctx, promptActor)
			if err != nil {
				return err
			}
			c.queryActor(ctx, line)
		case "3":
			line, err := c.prompt(ctx, promptInsert)
			if err != nil {
				return err
			}
			c.insert(ctx, line)
		case "4":
			if c.save(ctx) {
				return nil
			}
		case "5":
			return nil
		case "6":
			c.diff()
		case "7":
			c.stats()
		}
	}
}

// read scans lines in the background until input ends or done is closed.
// readErr is set before the returned channel is closed.
func (c *Controller) read(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-done:
				return
			}
		}
		c.readErr = c.in.Err()
	}()
	return lines
}

// prompt writes msg and waits for the next line. It returns io.EOF at the end
// of input.
func (c *Controller) prompt(ctx context.Context, msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.readErr != nil {
				return "", fmt.Errorf("read input: %w", c.readErr)
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Controller) queryMovies(ctx context.Context, line string) {
	q, err := query.ParseMovieQuery(record.ParseLine(line))
	if err != nil {
		c.fail(err)
		return
	}
	result, err := c.engine.Run(ctx, q)
	if err != nil {
		c.fail(err)
		return
	}
	c.render(result)
}

func (c *Controller) queryActor(ctx context.Context, actor string) {
	result, err := c.engine.Costars(ctx, actor)
	if err != nil {
		c.fail(err)
		return
	}
	c.render(result)
}

func (c *Controller) insert(ctx context.Context, line string) {
	fields := record.ParseLine(line)
	title, actors := fields[0], fields[1:]

	start := time.Now()
	err := c.ix.MergeMovie(title, actors)
	c.metrics.RecordMerge(len(actors), time.Since(start), err)
	c.logger.LogMerge(ctx, title, len(actors), err)
	if err != nil {
		c.fail(err)
	}
}

func (c *Controller) save(ctx context.Context) bool {
	start := time.Now()
	n, err := c.saver.Save(ctx, c.output, c.ix)
	d := time.Since(start)
	c.metrics.RecordSave(n, d, err)
	c.logger.LogSave(ctx, c.output, n, d, err)
	if err != nil {
		c.errs.Fprintf(c.out, "Could not save to %s: %v\n", c.output, err)
		return false
	}
	return true
}

func (c *Controller) diff() {
	d := persist.Diff(c.output, c.output+" (unsaved)", c.baseline, persist.Marshal(c.ix))
	if d == "" {
		fmt.Fprintln(c.out, msgNoChanges)
		return
	}
	fmt.Fprint(c.out, d)
}

func (c *Controller) stats() {
	s := c.ix.Stats()
	c.heading.Fprintln(c.out, "Statistics")
	fmt.Fprintf(c.out, "Movies: %d\nActors: %d\nEdges: %d\n", s.Movies, s.Actors, s.Edges)
}

func (c *Controller) render(s index.Set) {
	Render(c.out, s)
}

// Render writes the names in s sorted and comma separated on one line, or a
// notice when s is empty.
func Render(w io.Writer, s index.Set) {
	if s.IsEmpty() {
		fmt.Fprintln(w, msgEmptyGroup)
		return
	}
	fmt.Fprintln(w, strings.Join(s.Names(), record.Separator))
}

func (c *Controller) fail(err error) {
	c.errs.Fprintln(c.out, message(err))
}

// message maps an error to the text shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, query.ErrUnknownMovie):
		return msgUnknownMovie
	case errors.Is(err, query.ErrUnknownActor):
		return msgUnknownActor
	case errors.Is(err, query.ErrMalformedQuery), errors.Is(err, index.ErrEmptyName), errors.Is(err, index.ErrInvalidName):
		return msgMalformed
	case errors.Is(err, query.ErrInvalidOperator):
		return msgInvalidOperator
	case errors.Is(err, index.ErrInsufficientData):
		return msgInsufficientData
	default:
		return err.Error()
	}
}
