package registry

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jchultarsky101/pcli2-mcp/internal/translate"
)

// newTool assembles a registry entry from a translation spec plus
// per-argument documentation. The input schema is derived from the
// spec, so the advertised shape and the translation rule cannot drift
// apart.
func newTool(name, description string, spec translate.Spec, docs map[string]string) *Tool {
	properties := make(map[string]*jsonschema.Schema, len(spec.Args))
	for _, a := range spec.Args {
		properties[a.Key] = propertySchema(a, docs[a.Key])
	}

	var required []string
	for _, req := range spec.Require {
		if len(req.Keys) == 1 {
			required = append(required, req.Keys[0])
		}
	}

	return &Tool{
		Def: &mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		},
		Spec: spec,
	}
}

func propertySchema(a translate.Arg, description string) *jsonschema.Schema {
	switch a.Kind {
	case translate.KindBool:
		return &jsonschema.Schema{Type: "boolean", Description: description}
	case translate.KindNumber:
		return &jsonschema.Schema{Type: "number", Description: description}
	case translate.KindInt:
		return &jsonschema.Schema{Type: "integer", Description: description}
	case translate.KindEnum:
		values := make([]any, len(a.Enum))
		for i, v := range a.Enum {
			values[i] = v
		}

		return &jsonschema.Schema{Type: "string", Enum: values, Description: description}
	case translate.KindStringOrList:
		return &jsonschema.Schema{
			Description: description,
			AnyOf: []*jsonschema.Schema{
				{Type: "string"},
				{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			},
		}
	case translate.KindPositionalList:
		return &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: description,
		}
	default:
		return &jsonschema.Schema{Type: "string", Description: description}
	}
}

// locatorArgs is the shared uuid-or-path pair used by tools that
// address a single model or folder.
func locatorArgs() []translate.Arg {
	return []translate.Arg{
		{Key: "uuid", Flag: "--uuid", Kind: translate.KindString},
		{Key: "path", Flag: "--path", Kind: translate.KindString},
	}
}

func locatorDocs(noun string) map[string]string {
	return map[string]string{
		"uuid": "UUID of the " + noun,
		"path": "Folder path of the " + noun,
	}
}

var formatArg = translate.Arg{Key: "format", Flag: "--format", Kind: translate.KindEnum, Enum: []string{"json", "csv", "tree"}}

// catalog returns the specific pcli2 tools, one per sub-command, in
// the order they are advertised by tools/list.
func catalog() []*Tool {
	oneOfLocator := translate.Requirement{Keys: []string{"uuid", "path"}}

	return []*Tool{
		newTool("pcli2_tenant_list", "List the Physna tenants configured in pcli2.",
			translate.Spec{
				Command: []string{"tenant", "list"},
				Args:    []translate.Arg{formatArg},
			},
			map[string]string{"format": "Output format"},
		),

		newTool("pcli2_tenant_use", "Select the active Physna tenant for subsequent operations.",
			translate.Spec{
				Command: []string{"tenant", "use"},
				Args:    []translate.Arg{{Key: "name", Flag: "--name", Kind: translate.KindString}},
				Require: []translate.Requirement{{Keys: []string{"name"}}},
			},
			map[string]string{"name": "Name of the tenant to activate"},
		),

		newTool("pcli2_tenant_show", "Show the currently active tenant and its connection details.",
			translate.Spec{
				Command: []string{"tenant", "show"},
				Args:    []translate.Arg{formatArg},
			},
			map[string]string{"format": "Output format"},
		),

		newTool("pcli2_login", "Authenticate against the active tenant and cache the access token.",
			translate.Spec{
				Command: []string{"auth", "login"},
				Args: []translate.Arg{
					{Key: "tenant", Flag: "--tenant", Kind: translate.KindString},
				},
			},
			map[string]string{"tenant": "Tenant to log into (defaults to the active tenant)"},
		),

		newTool("pcli2_logout", "Invalidate the cached access token for the active tenant.",
			translate.Spec{Command: []string{"auth", "logout"}},
			nil,
		),

		newTool("pcli2_token_show", "Print the cached access token for the active tenant.",
			translate.Spec{Command: []string{"auth", "token"}},
			nil,
		),

		newTool("pcli2_folder_list", "List folders in the active tenant, optionally filtered by folder path.",
			translate.Spec{
				Command: []string{"folder", "list"},
				Args: []translate.Arg{
					{Key: "folder", Flag: "--folder", Kind: translate.KindStringOrList},
					formatArg,
				},
			},
			map[string]string{
				"folder": "Folder path filter; a single path or a list of paths",
				"format": "Output format",
			},
		),

		newTool("pcli2_folder_create", "Create a folder in the active tenant.",
			translate.Spec{
				Command: []string{"folder", "create"},
				Args:    []translate.Arg{{Key: "name", Flag: "--name", Kind: translate.KindString}},
				Require: []translate.Requirement{{Keys: []string{"name"}}},
			},
			map[string]string{"name": "Name of the folder to create"},
		),

		newTool("pcli2_folder_delete", "Delete a folder. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"folder", "delete"},
				Args: append(locatorArgs(),
					translate.Arg{Key: "force", Flag: "--force", Kind: translate.KindBool}),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("folder"), map[string]string{
				"force": "Delete without confirmation, including non-empty folders",
			}),
		),

		newTool("pcli2_model_list", "List models in the active tenant, optionally filtered by folder path.",
			translate.Spec{
				Command: []string{"model", "list"},
				Args: []translate.Arg{
					{Key: "folder", Flag: "--folder", Kind: translate.KindStringOrList},
					{Key: "limit", Flag: "--limit", Kind: translate.KindInt},
					formatArg,
				},
			},
			map[string]string{
				"folder": "Folder path filter; a single path or a list of paths",
				"limit":  "Maximum number of models to return (non-negative)",
				"format": "Output format",
			},
		),

		newTool("pcli2_model_show", "Show metadata for one model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"model", "show"},
				Args:    append(locatorArgs(), formatArg),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("model"), map[string]string{"format": "Output format"}),
		),

		newTool("pcli2_model_upload", "Upload a CAD file as a new model.",
			translate.Spec{
				Command: []string{"model", "upload"},
				Args: []translate.Arg{
					{Key: "file", Flag: "--file", Kind: translate.KindString},
					{Key: "folder", Flag: "--folder", Kind: translate.KindString},
					{Key: "units", Flag: "--units", Kind: translate.KindEnum, Enum: []string{"mm", "cm", "m", "in", "ft"}},
				},
				Require: []translate.Requirement{{Keys: []string{"file"}}},
			},
			map[string]string{
				"file":   "Local path of the CAD file to upload",
				"folder": "Destination folder path",
				"units":  "Length units of the model geometry",
			},
		),

		newTool("pcli2_model_delete", "Delete a model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"model", "delete"},
				Args: append(locatorArgs(),
					translate.Arg{Key: "force", Flag: "--force", Kind: translate.KindBool}),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("model"), map[string]string{
				"force": "Delete without confirmation",
			}),
		),

		newTool("pcli2_model_download", "Download the original CAD file of a model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"model", "download"},
				Args: append(locatorArgs(),
					translate.Arg{Key: "output", Flag: "--output", Kind: translate.KindString}),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("model"), map[string]string{
				"output": "Local path to write the file to",
			}),
		),

		newTool("pcli2_model_reprocess", "Re-run geometry processing for a model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"model", "reprocess"},
				Args:    locatorArgs(),
				Require: []translate.Requirement{oneOfLocator},
			},
			locatorDocs("model"),
		),

		newTool("pcli2_match_geometric", "Find geometrically similar models. Provide either 'uuid' or 'path' for the reference model.",
			translate.Spec{
				Command: []string{"match", "geometric"},
				Args: append(locatorArgs(),
					translate.Arg{Key: "threshold", Flag: "--threshold", Kind: translate.KindNumber},
					translate.Arg{Key: "limit", Flag: "--limit", Kind: translate.KindInt},
					translate.Arg{Key: "folder", Flag: "--folder", Kind: translate.KindStringOrList},
					translate.Arg{Key: "metadata", Flag: "--metadata", Kind: translate.KindBool}),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("reference model"), map[string]string{
				"threshold": "Minimum match score between 0 and 1",
				"limit":     "Maximum number of matches to return (non-negative)",
				"folder":    "Restrict matching to these folder paths; a single path or a list",
				"metadata":  "Include model metadata in the match report",
			}),
		),

		newTool("pcli2_match_scan", "Run a bulk match scan across folders.",
			translate.Spec{
				Command: []string{"match", "scan"},
				Args: []translate.Arg{
					{Key: "folder", Flag: "--folder", Kind: translate.KindStringOrList},
					{Key: "threshold", Flag: "--threshold", Kind: translate.KindNumber},
					{Key: "concurrency", Flag: "--concurrency", Kind: translate.KindInt},
					{Key: "delay", Flag: "--delay", Kind: translate.KindInt},
				},
			},
			map[string]string{
				"folder":      "Folder paths to scan; a single path or a list",
				"threshold":   "Minimum match score between 0 and 1",
				"concurrency": "Number of parallel match requests (non-negative)",
				"delay":       "Delay between requests in milliseconds (non-negative)",
			},
		),

		newTool("pcli2_property_list", "List metadata properties of a model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"property", "list"},
				Args:    append(locatorArgs(), formatArg),
				Require: []translate.Requirement{oneOfLocator},
			},
			mergeDocs(locatorDocs("model"), map[string]string{"format": "Output format"}),
		),

		newTool("pcli2_property_set", "Set a metadata property on a model. Provide either 'uuid' or 'path'.",
			translate.Spec{
				Command: []string{"property", "set"},
				Args: append(locatorArgs(),
					translate.Arg{Key: "name", Flag: "--name", Kind: translate.KindString},
					translate.Arg{Key: "value", Flag: "--value", Kind: translate.KindString}),
				Require: []translate.Requirement{
					oneOfLocator,
					{Keys: []string{"name"}},
					{Keys: []string{"value"}},
				},
			},
			mergeDocs(locatorDocs("model"), map[string]string{
				"name":  "Property name",
				"value": "Property value",
			}),
		),

		newTool("pcli2_config_show", "Show the effective pcli2 configuration.",
			translate.Spec{
				Command: []string{"config", "show"},
				Args:    []translate.Arg{formatArg},
			},
			map[string]string{"format": "Output format"},
		),
	}
}

// genericTool is the free-form escape hatch: it forwards a pcli2
// command, optional sub-command, and raw arguments verbatim.
func genericTool() *Tool {
	return newTool("pcli2", "Run an arbitrary pcli2 command. Prefer the specific pcli2_* tools when one fits.",
		translate.Spec{
			Args: []translate.Arg{
				{Key: "command", Kind: translate.KindPositional},
				{Key: "subcommand", Kind: translate.KindPositional},
				{Key: "args", Kind: translate.KindPositionalList},
			},
			Require: []translate.Requirement{{Keys: []string{"command"}}},
		},
		map[string]string{
			"command":    "Top-level pcli2 command, e.g. 'tenant' or 'model'",
			"subcommand": "Sub-command, e.g. 'list'",
			"args":       "Additional raw arguments, passed through in order",
		},
	)
}

func mergeDocs(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}
