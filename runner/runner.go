package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/numbridge/engine"
	"github.com/hupe1980/numbridge/logging"
	"github.com/hupe1980/numbridge/render"
	"github.com/hupe1980/numbridge/session"
)

// DefaultResetCommand is the chat line that discards a conversation's session.
const DefaultResetCommand = "!reset"

// ErrMalformedLine is returned for relay lines without a conversation field.
var ErrMalformedLine = errors.New("malformed relay line: expected conversation<TAB>text")

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Engine hosting the sessions. Defaults to engine.New() with the IRC
	// target.
	Engine *engine.Engine
	// Target replies are rendered for. Defaults to the engine's target.
	Target render.Target
	// ResetCommand discards the conversation's session when sent as a whole
	// line. Empty disables resetting.
	ResetCommand string
	// QueueSize is the per-conversation backlog in Run before reading from
	// the input blocks.
	QueueSize int
	// IdleTimeout drops conversations idle for this long and closes their
	// sessions, freeing room under the engine's session limit. Run checks
	// every IdleTimeout/2; callers of Handle can call Prune themselves. Zero
	// keeps conversations until reset.
	IdleTimeout time.Duration
	// Logging services.
	Logger logging.Logger
}

// Runner relays chat lines to evaluation sessions: one session per
// conversation, created on first use. Requests of one conversation are
// served in order; different conversations are served concurrently.
// Public methods are safe for concurrent use.
type Runner struct {
	engine       *engine.Engine
	target       render.Target
	resetCommand string
	queueSize    int
	idleTimeout  time.Duration
	logger       logging.Logger
	now          func() time.Time

	conversations map[string]*conversation
	mu            sync.Mutex
}

type conversation struct {
	mu       sync.Mutex // serializes requests; held across evaluation
	handle   string
	lastUsed time.Time
	closed   bool // pruned; a fresh conversation replaces it
}

// New constructs a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		ResetCommand: DefaultResetCommand,
		QueueSize:    16,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Engine == nil {
		opts.Engine = engine.New(func(o *engine.Options) { o.Logger = opts.Logger })
	}
	if opts.Target == "" {
		opts.Target = opts.Engine.Target()
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}

	return &Runner{
		engine:        opts.Engine,
		target:        opts.Target,
		resetCommand:  opts.ResetCommand,
		queueSize:     opts.QueueSize,
		idleTimeout:   opts.IdleTimeout,
		logger:        opts.Logger,
		now:           time.Now,
		conversations: make(map[string]*conversation),
	}
}

func (r *Runner) conversation(id string) *conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		c = &conversation{}
		r.conversations[id] = c
	}
	return c
}

// acquire returns the live conversation for id with its lock held.
func (r *Runner) acquire(id string) *conversation {
	for {
		c := r.conversation(id)
		c.mu.Lock()
		if !c.closed {
			return c
		}
		c.mu.Unlock()
	}
}

// Conversations returns the number of live conversations.
func (r *Runner) Conversations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conversations)
}

// Handle evaluates one chat line for conversationID and returns the reply
// lines: captured print output first, then the rendered result. A
// definition yields no lines.
//
// The conversation's session is created on first use and re-created if it
// was closed underneath the runner.
func (r *Runner) Handle(ctx context.Context, conversationID, line string) ([]string, error) {
	c := r.acquire(conversationID)
	defer c.mu.Unlock()
	c.lastUsed = r.now()

	if r.resetCommand != "" && strings.TrimSpace(line) == r.resetCommand {
		return []string{"session reset"}, r.reset(ctx, conversationID, c)
	}

	if c.handle == "" {
		handle, err := r.engine.CreateSession(ctx)
		if err != nil {
			return nil, err
		}
		c.handle = handle
		r.logger.Debug("Conversation attached", "conversation", conversationID, "session_id", handle)
	}

	res, err := r.engine.Evaluate(ctx, c.handle, line, r.target)
	if errors.Is(err, session.ErrNotFound) {
		c.handle = ""
		handle, cerr := r.engine.CreateSession(ctx)
		if cerr != nil {
			return nil, cerr
		}
		c.handle = handle
		res, err = r.engine.Evaluate(ctx, c.handle, line, r.target)
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, p := range res.Printed {
		lines = append(lines, splitLines(p)...)
	}
	return append(lines, splitLines(res.Output)...), nil
}

func (r *Runner) reset(ctx context.Context, conversationID string, c *conversation) error {
	if c.handle == "" {
		return nil
	}
	handle := c.handle
	c.handle = ""
	r.logger.Info("Conversation reset", "conversation", conversationID, "session_id", handle)
	if err := r.engine.CloseSession(ctx, handle); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

type staleConversation struct {
	id string
	c  *conversation
}

// Prune forgets conversations that have been idle for at least idle and
// closes their sessions. Conversations with a request in flight are kept.
// It returns the ids of the dropped conversations.
func (r *Runner) Prune(ctx context.Context, idle time.Duration) []string {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []staleConversation
	for id, c := range r.conversations {
		if !c.mu.TryLock() {
			continue
		}
		if c.lastUsed.After(cutoff) {
			c.mu.Unlock()
			continue
		}
		c.closed = true
		delete(r.conversations, id)
		stale = append(stale, staleConversation{id: id, c: c})
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(stale))
	for _, s := range stale {
		if s.c.handle != "" {
			if err := r.engine.CloseSession(ctx, s.c.handle); err != nil && !errors.Is(err, session.ErrNotFound) {
				r.logger.Warn("Closing idle session failed", "conversation", s.id, "session_id", s.c.handle, "error", err)
			}
		}
		r.logger.Debug("Conversation dropped", "conversation", s.id, "idle_since", s.c.lastUsed)
		s.c.mu.Unlock()
		ids = append(ids, s.id)
	}
	return ids
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Run relays lines read from in until EOF or ctx is done. Cancelling ctx
// returns promptly even while in blocks; the goroutine reading in then exits
// with the next line or EOF.
//
// Input lines have the form conversation<TAB>text; every reply line is
// written as conversation<TAB>reply. Failures are replied as
// conversation<TAB>error: message. Requests of one conversation are answered
// in input order; different conversations are served concurrently.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := &lineWriter{w: out}
	queues := make(map[string]chan string)
	var wg sync.WaitGroup

	dispatch := func(conversationID, text string) {
		q, ok := queues[conversationID]
		if !ok {
			q = make(chan string, r.queueSize)
			queues[conversationID] = q
			wg.Add(1)
			go func() {
				defer wg.Done()
				for text := range q {
					r.serve(ctx, w, conversationID, text)
				}
			}()
		}
		select {
		case q <- text:
		case <-ctx.Done():
		}
	}

	lines := make(chan string)
	var scanErr error // read only after lines is closed
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = scanner.Err()
	}()

	var tick <-chan time.Time
	if r.idleTimeout > 0 {
		ticker := time.NewTicker(max(r.idleTimeout/2, time.Millisecond))
		defer ticker.Stop()
		tick = ticker.C
	}

	eof := false
loop:
	for ctx.Err() == nil {
		select {
		case line, ok := <-lines:
			if !ok {
				eof = true
				break loop
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			conversationID, text, err := ParseLine(line)
			if err != nil {
				r.logger.Warn("Skipping relay line", "error", err)
				continue
			}
			dispatch(conversationID, text)
		case <-tick:
			for _, id := range r.Prune(ctx, r.idleTimeout) {
				// Only this loop sends to queues, so an empty queue stays empty.
				if q, ok := queues[id]; ok && len(q) == 0 {
					close(q)
					delete(queues, id)
				}
			}
		case <-ctx.Done():
			break loop
		}
	}

	for _, q := range queues {
		close(q)
	}
	wg.Wait()

	if eof && scanErr != nil {
		return fmt.Errorf("read relay input: %w", scanErr)
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("write relay output: %w", err)
	}
	return ctx.Err()
}

func (r *Runner) serve(ctx context.Context, w *lineWriter, conversationID, text string) {
	if ctx.Err() != nil {
		return
	}
	lines, err := r.Handle(ctx, conversationID, text)
	if err != nil {
		w.WriteLines(conversationID, []string{FormatError(err)})
		return
	}
	w.WriteLines(conversationID, lines)
}

// ParseLine splits a relay line into conversation id and text.
func ParseLine(line string) (string, string, error) {
	conversationID, text, ok := strings.Cut(line, "\t")
	if !ok || conversationID == "" {
		return "", "", ErrMalformedLine
	}
	return conversationID, text, nil
}

// FormatError renders an error as a single chat line.
func FormatError(err error) string {
	return "error: " + strings.ReplaceAll(err.Error(), "\n", " ")
}

// lineWriter writes the reply lines of one request without interleaving
// them with other conversations.
type lineWriter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

func (lw *lineWriter) WriteLines(conversationID string, lines []string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	for _, l := range lines {
		if lw.err != nil {
			return
		}
		_, lw.err = fmt.Fprintf(lw.w, "%s\t%s\n", conversationID, l)
	}
}

func (lw *lineWriter) Err() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.err
}
