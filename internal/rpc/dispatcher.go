package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/jchultarsky101/pcli2-mcp/internal/errors"
	"github.com/jchultarsky101/pcli2-mcp/internal/executor"
	"github.com/jchultarsky101/pcli2-mcp/internal/registry"
)

// Runner executes a translated command line. It is satisfied by
// *executor.Executor and by mocks in tests.
type Runner interface {
	Program() string
	Run(ctx context.Context, argv []string) (executor.Result, error)
}

// Dispatcher routes JSON-RPC messages to the MCP method handlers.
//
// A Dispatcher holds no per-request state beyond what lives on the
// stack of Handle, so one instance serves concurrent HTTP requests
// without locking; the registry it reads is immutable.
type Dispatcher struct {
	log               *slog.Logger
	reg               *registry.Registry
	runner            Runner
	serverName        string
	serverVersion     string
	methodToolRouting bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMethodToolRouting accepts the alternate "tools/{name}/call"
// method form in addition to "tools/call". Enabled on the stdio
// transport only.
func WithMethodToolRouting() Option {
	return func(d *Dispatcher) {
		d.methodToolRouting = true
	}
}

// New creates a dispatcher over the given registry and runner.
func New(log *slog.Logger, reg *registry.Registry, runner Runner, name, version string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		log:           log.With("component", "dispatcher"),
		reg:           reg,
		runner:        runner,
		serverName:    name,
		serverVersion: version,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Handle processes one raw JSON-RPC message and returns the encoded
// response envelope. A nil response means the message was a
// notification and nothing must be written back. shutdown is true
// when a shutdown notification was received and the serving loop
// should stop.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) (resp []byte, shutdown bool) {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		d.log.Warn("Failed to parse message", "error", err)

		return d.respondError(nil, codeParseError, "Parse error"), false
	}

	if req.JSONRPC != nil && *req.JSONRPC != "2.0" {
		return d.respondError(req.ID, codeInvalidRequest,
			fmt.Sprintf("Unsupported JSON-RPC version %q", *req.JSONRPC)), false
	}

	if req.isNotification() {
		return nil, d.handleNotification(&req)
	}

	switch req.Method {
	case "initialize":
		return d.handleInitialize(&req), false
	case "tools/list":
		return d.handleToolsList(&req), false
	case "tools/call":
		return d.handleToolsCall(ctx, &req), false
	}

	if d.methodToolRouting {
		if name, ok := toolFromMethod(req.Method); ok {
			return d.callTool(ctx, req.ID, name, argumentsFromParams(req.Params)), false
		}
	}

	return d.respondError(req.ID, codeMethodNotFound,
		fmt.Sprintf("Method '%s' not found", req.Method)), false
}

// handleNotification dispatches side effects for notifications.
// Notifications never produce a response.
func (d *Dispatcher) handleNotification(req *request) (shutdown bool) {
	switch req.Method {
	case "shutdown":
		d.log.Info("Shutdown notification received")

		return true
	case "initialized", "notifications/initialized":
		d.log.Debug("Client initialized")
	default:
		d.log.Info("Dropping unhandled notification", "method", req.Method)
	}

	return false
}

func (d *Dispatcher) handleInitialize(req *request) []byte {
	d.log.Debug("Processing initialize request")

	return d.respond(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo: serverInfo{
			Name:    d.serverName,
			Version: d.serverVersion,
		},
	})
}

func (d *Dispatcher) handleToolsList(req *request) []byte {
	return d.respond(req.ID, toolsListResult{Tools: d.reg.Definitions()})
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, req *request) []byte {
	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return d.respondError(req.ID, codeInvalidParams,
				fmt.Sprintf("Invalid params: %v", err))
		}
	}

	return d.callTool(ctx, req.ID, params.Name, params.Arguments)
}

// callTool runs the full tool invocation pipeline: registry lookup,
// argument translation, subprocess execution, result mapping.
func (d *Dispatcher) callTool(ctx context.Context, id json.RawMessage, name string, args map[string]any) []byte {
	log := d.log.With("call_id", ulid.Make().String(), "tool", name)

	tool, ok := d.reg.Get(name)
	if !ok {
		log.Warn("Unknown tool requested")

		// Result-level error, not a protocol error: the envelope is a
		// success response whose payload flags isError.
		unknown := &errors.UnknownToolError{Name: name}

		return d.respond(id, errorResult(unknown.Error()))
	}

	warnMalformedUUID(log, tool, args)

	label := tool.Spec.Label(d.runner.Program())

	argv, err := tool.Spec.Translate(args)
	if err != nil {
		return d.callFailed(log, id, label, err)
	}

	log.Info("Executing tool", "argv", argv)

	res, err := d.runner.Run(ctx, argv)
	if err != nil {
		return d.callFailed(log, id, label, err)
	}

	if !res.ExitSuccess {
		log.Warn("Tool exited non-zero", "exit_code", res.ExitCode)

		cmdErr := &errors.CommandError{
			Command:  label,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}

		return d.respondError(id, codeInvalidParams, cmdErr.Error())
	}

	log.Debug("Tool completed", "stdout_bytes", len(res.Stdout))

	return d.respond(id, textResult(res.Stdout))
}

// callFailed maps both validation and execution failures onto the
// invalid-params error envelope, logged at a severity matching the
// failure class.
func (d *Dispatcher) callFailed(log *slog.Logger, id json.RawMessage, label string, err error) []byte {
	if errors.IsValidation(err) {
		log.Warn("Argument validation failed", "error", err)
	} else {
		log.Error("Tool execution failed", "error", err)
	}

	return d.respondError(id, codeInvalidParams, fmt.Sprintf("%s: %v", label, err))
}

// warnMalformedUUID flags a uuid-valued locator that does not parse as
// a UUID. The value is still forwarded: pcli2 is the authority on what
// it accepts.
func warnMalformedUUID(log *slog.Logger, tool *registry.Tool, args map[string]any) {
	if !tool.Spec.HasArg("uuid") {
		return
	}

	if s, ok := args["uuid"].(string); ok {
		if err := uuid.Validate(s); err != nil {
			log.Warn("Argument 'uuid' is not a valid UUID", "value", s)
		}
	}
}

// toolFromMethod extracts the tool name from the alternate
// "tools/{name}/call" routing form.
func toolFromMethod(method string) (string, bool) {
	parts := strings.Split(method, "/")
	if len(parts) == 3 && parts[0] == "tools" && parts[2] == "call" && parts[1] != "" {
		return parts[1], true
	}

	return "", false
}

// argumentsFromParams extracts params.arguments, defaulting to empty.
func argumentsFromParams(params json.RawMessage) map[string]any {
	if len(params) == 0 {
		return nil
	}

	var wrapper struct {
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(params, &wrapper); err != nil {
		return nil
	}

	return wrapper.Arguments
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

func (d *Dispatcher) respond(id json.RawMessage, result any) []byte {
	return d.encode(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (d *Dispatcher) respondError(id json.RawMessage, code int, message string) []byte {
	return d.encode(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func (d *Dispatcher) encode(resp response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		d.log.Error("Failed to encode response", "error", err)

		fallback, _ := json.Marshal(response{
			JSONRPC: "2.0",
			ID:      resp.ID,
			Error:   &rpcError{Code: codeInternalError, Message: "Internal error"},
		})

		return fallback
	}

	return data
}
