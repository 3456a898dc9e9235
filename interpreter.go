package agentrun

import (
	"context"
	"encoding/json"
	"fmt"
)

// CodeInterpreter is the code-execution view of a sandbox created from a
// code-interpreter template. Code runs in a stateful environment where
// variables, imports and function definitions persist across calls inside
// one execution context.
type CodeInterpreter struct {
	*Sandbox
}

// Unwrap returns the underlying sandbox.
func (ci *CodeInterpreter) Unwrap() *Sandbox { return ci.Sandbox }

// ExecContext is an isolated execution context inside a code interpreter.
// State in one context does not affect other contexts.
type ExecContext struct {
	ID       string `json:"contextId"`
	Language string `json:"language,omitempty"`
	CWD      string `json:"cwd,omitempty"`
}

// CreateContextParams describes an execution context to create.
type CreateContextParams struct {
	Language string
	CWD      string
}

// CreateContext creates a new execution context.
func (ci *CodeInterpreter) CreateContext(ctx context.Context, params *CreateContextParams) (*ExecContext, error) {
	if params == nil {
		params = &CreateContextParams{}
	}

	body := map[string]string{}
	if params.Language != "" {
		body["language"] = params.Language
	}
	if params.CWD != "" {
		body["cwd"] = params.CWD
	}

	raw, err := ci.data.post(ctx, "/contexts", &requestOptions{body: body})
	if err != nil {
		return nil, err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var ec ExecContext
	if err := json.Unmarshal(data, &ec); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse context response: %v", err))
	}
	return &ec, nil
}

// ListContexts returns all execution contexts in the interpreter.
func (ci *CodeInterpreter) ListContexts(ctx context.Context) ([]*ExecContext, error) {
	raw, err := ci.data.get(ctx, "/contexts", nil)
	if err != nil {
		return nil, err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var out struct {
		Contexts []*ExecContext `json:"contexts"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse contexts response: %v", err))
	}
	return out.Contexts, nil
}

// RemoveContext removes an execution context.
func (ci *CodeInterpreter) RemoveContext(ctx context.Context, contextID string) error {
	if contextID == "" {
		return fmt.Errorf("%w: context id is required", ErrInvalidArgument)
	}

	raw, err := ci.data.delete(ctx, "/contexts/"+contextID, nil)
	if err != nil {
		return err
	}
	_, err = unwrapEnvelope(raw)
	return err
}

// Execution is the result of running code.
type Execution struct {
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exitCode"`
}

// RunCodeParams refines a RunCode call.
type RunCodeParams struct {
	// Language selects the runtime. Mutually exclusive with ContextID.
	Language string

	// ContextID runs the code inside an existing execution context.
	ContextID string

	// EnvVars sets environment variables for this execution.
	EnvVars map[string]string
}

// RunCode executes code in the interpreter and returns the execution
// result.
//
// Example:
//
//	execution, err := interpreter.RunCode(ctx, "print('hello')", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(execution.Output)
func (ci *CodeInterpreter) RunCode(ctx context.Context, code string, params *RunCodeParams) (*Execution, error) {
	if params == nil {
		params = &RunCodeParams{}
	}
	if params.Language != "" && params.ContextID != "" {
		return nil, fmt.Errorf("%w: cannot provide both language and context id", ErrInvalidArgument)
	}

	body := map[string]any{"code": code}
	if params.Language != "" {
		body["language"] = params.Language
	}
	if params.ContextID != "" {
		body["contextId"] = params.ContextID
	}
	if len(params.EnvVars) > 0 {
		body["envVars"] = params.EnvVars
	}

	raw, err := ci.data.post(ctx, "/execute", &requestOptions{body: body})
	if err != nil {
		return nil, err
	}
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var execution Execution
	if err := json.Unmarshal(data, &execution); err != nil {
		return nil, NewClientError(0, fmt.Sprintf("failed to parse execution response: %v", err))
	}
	return &execution, nil
}
