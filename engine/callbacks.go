package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/numbridge/core"
	"github.com/hupe1980/numbridge/render"
)

// CallbackType defines the specific lifecycle points where callbacks can be executed.
//
// Callbacks provide a mechanism for hooking into the engine's session and
// evaluation lifecycle without modifying core logic.
//
// Available callback types:
//   - BeforeEval/AfterEval: Around a single evaluation request
//   - OnError: When an evaluation fails
//   - OnSessionCreated/OnSessionClosed: Around the session lifecycle
//
// Callbacks are executed synchronously. BeforeEval, AfterEval and
// OnSessionCreated callbacks can abort the operation by returning an error.
type CallbackType string

const (
	// CallbackBeforeEval is triggered before input reaches the session.
	// Use for validation, rate limiting or auditing.
	CallbackBeforeEval CallbackType = "before_eval"

	// CallbackAfterEval is triggered after a successful evaluation.
	// Use for metrics collection or post-processing.
	CallbackAfterEval CallbackType = "after_eval"

	// CallbackOnError is triggered when an evaluation fails, including busy
	// sessions. Errors returned by these callbacks are logged, not returned.
	CallbackOnError CallbackType = "on_error"

	// CallbackOnSessionCreated is triggered after a session has been
	// bootstrapped and stored. Returning an error discards the session.
	CallbackOnSessionCreated CallbackType = "on_session_created"

	// CallbackOnSessionClosed is triggered after a session was removed.
	CallbackOnSessionClosed CallbackType = "on_session_closed"
)

// CallbackContext provides context information for callback execution.
//
// Fields are populated depending on the callback type:
//   - SessionID: always
//   - Input, Target: evaluation callbacks
//   - Result: CallbackAfterEval
//   - Err: CallbackOnError, and CallbackOnSessionCreated when bootstrapping
//     failed
type CallbackContext struct {
	// SessionID identifies the session the callback is about.
	SessionID string

	// Input is the program text of the evaluation request.
	Input string

	// Target is the output format requested for the evaluation.
	Target render.Target

	// Result is the rendered reply of a successful evaluation.
	Result *core.EvalResult

	// Err is the failure being reported, if any.
	Err error

	// CallbackType indicates which callback type triggered this execution.
	// Allows shared callback implementations to behave differently
	// based on the lifecycle phase.
	CallbackType CallbackType

	// Metadata provides extensible storage shared by callbacks of one
	// operation, e.g. a BeforeEval hook passing a start marker to AfterEval.
	Metadata map[string]any
}

// Callback defines the interface for lifecycle hooks.
//
// Implementations should be fast: callbacks run on the request path and
// block the evaluation they surround.
type Callback interface {
	// Type returns the callback type this implementation handles.
	Type() CallbackType

	// Execute performs the callback logic with the provided context.
	Execute(ctx context.Context, callbackCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a callback implementation.
//
// Example:
//
//	audit := NewFunctionCallback(
//	    CallbackBeforeEval,
//	    func(ctx context.Context, callbackCtx *CallbackContext) error {
//	        log.Printf("eval in %s", callbackCtx.SessionID)
//	        return nil
//	    },
//	)
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, callbackCtx *CallbackContext) error
}

// NewFunctionCallback creates a new function-based callback.
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, callbackCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{
		callbackType: callbackType,
		fn:           fn,
	}
}

// Type returns the callback type this function handles.
func (c *FunctionCallback) Type() CallbackType {
	return c.callbackType
}

// Execute calls the wrapped function with the provided context.
func (c *FunctionCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	return c.fn(ctx, callbackCtx)
}

// CallbackManager keeps registered callbacks and runs them at the engine's
// lifecycle points.
//
// Callbacks are executed in registration order, and any callback returning
// an error stops execution of the remaining callbacks of that type.
// Registration and execution are safe for concurrent use.
type CallbackManager struct {
	mu        sync.RWMutex
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates an empty callback manager.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{
		callbacks: make(map[CallbackType][]Callback),
	}
}

// RegisterCallback adds a callback to the manager for its type.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks executes all registered callbacks for the specified type.
//
// Returns the first error returned by any callback, or nil if all succeed.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	callbackCtx *CallbackContext,
) error {
	cm.mu.RLock()
	callbacks := cm.callbacks[callbackType]
	cm.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback.Execute(ctx, callbackCtx); err != nil {
			return err
		}
	}
	return nil
}

// LoggingCallback forwards lifecycle events to a logging function.
//
// Example:
//
//	callback := NewLoggingCallback(CallbackAfterEval, func(message string) {
//	    log.Printf("[ENGINE] %s", message)
//	})
type LoggingCallback struct {
	callbackType CallbackType
	logger       func(message string)
}

// NewLoggingCallback creates a new logging callback.
func NewLoggingCallback(callbackType CallbackType, logger func(message string)) *LoggingCallback {
	return &LoggingCallback{
		callbackType: callbackType,
		logger:       logger,
	}
}

// Type returns the callback type this logger handles.
func (c *LoggingCallback) Type() CallbackType {
	return c.callbackType
}

// Execute logs the lifecycle event. The message includes the input only for
// evaluation callbacks and the error only when one is present.
func (c *LoggingCallback) Execute(_ context.Context, callbackCtx *CallbackContext) error {
	if c.logger == nil {
		return nil
	}
	message := fmt.Sprintf("[%s] Session: %s", c.callbackType, callbackCtx.SessionID)
	if callbackCtx.Input != "" {
		message += fmt.Sprintf(", Input: %q", callbackCtx.Input)
	}
	if callbackCtx.Err != nil {
		message += fmt.Sprintf(", Error: %v", callbackCtx.Err)
	}
	c.logger(message)
	return nil
}

// InputValidationCallback rejects evaluation requests before they reach a
// session.
//
// Example:
//
//	noImports := NewInputValidationCallback(func(input string) error {
//	    if strings.Contains(input, "use ") {
//	        return errors.New("modules cannot be loaded from chat")
//	    }
//	    return nil
//	})
type InputValidationCallback struct {
	validator func(input string) error
}

// NewInputValidationCallback creates a new input validation callback.
func NewInputValidationCallback(validator func(input string) error) *InputValidationCallback {
	return &InputValidationCallback{validator: validator}
}

// Type returns the callback type (always CallbackBeforeEval).
func (c *InputValidationCallback) Type() CallbackType {
	return CallbackBeforeEval
}

// Execute runs the validator against the request input.
func (c *InputValidationCallback) Execute(_ context.Context, callbackCtx *CallbackContext) error {
	if c.validator == nil {
		return nil
	}
	return c.validator(callbackCtx.Input)
}
