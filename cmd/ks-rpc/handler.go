package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"

	"github.com/kicad-edit/kicad-edit/project"
	"github.com/kicad-edit/kicad-edit/schematic"
)

type server struct {
	tools map[string]bool
}

func (s *server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if !s.tools[req.Method()] {
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
	result, err := s.dispatch(req.Method(), req.Params())
	return reply(ctx, result, err)
}

func (s *server) dispatch(method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_components":
		var p struct {
			SchematicPath string `json:"schematic_path"`
			Filter        string `json:"filter"`
			Where         string `json:"where"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		comps, err := schematic.ListComponents(p.SchematicPath, p.Filter)
		if err != nil {
			return nil, err
		}
		if p.Where != "" {
			if comps, err = schematic.FilterComponents(comps, p.Where); err != nil {
				return nil, err
			}
		}
		if comps == nil {
			comps = []schematic.Component{}
		}
		return comps, nil

	case "get_component":
		var p struct {
			SchematicPath string `json:"schematic_path"`
			Reference     string `json:"reference"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return schematic.GetComponent(p.SchematicPath, p.Reference)

	case "update_component":
		var p struct {
			SchematicPath string                     `json:"schematic_path"`
			Reference     string                     `json:"reference"`
			Properties    map[string]json.RawMessage `json:"properties"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		changes := map[string]*schematic.Change{}
		for key, raw := range p.Properties {
			ch, err := decodeChange(key, raw)
			if err != nil {
				return nil, err
			}
			changes[key] = ch
		}
		return schematic.UpdateComponent(p.SchematicPath, p.Reference, changes)

	case "update_schematic_info":
		var p struct {
			SchematicPath string  `json:"schematic_path"`
			Title         *string `json:"title"`
			Revision      *string `json:"revision"`
			Date          *string `json:"date"`
			Author        *string `json:"author"`
			Company       *string `json:"company"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return schematic.UpdateSheetInfo(p.SchematicPath, schematic.SheetInfo{
			Title:    p.Title,
			Revision: p.Revision,
			Date:     p.Date,
			Author:   p.Author,
			Company:  p.Company,
		})

	case "rename_net":
		var p struct {
			SchematicPath string `json:"schematic_path"`
			OldName       string `json:"old_name"`
			NewName       string `json:"new_name"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return schematic.RenameNet(p.SchematicPath, p.OldName, p.NewName)

	case "list_net_classes":
		var p struct {
			ProjectPath string `json:"project_path"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		classes, err := project.ListNetClasses(p.ProjectPath)
		if err != nil {
			return nil, err
		}
		if classes == nil {
			classes = []project.NetClass{}
		}
		return classes, nil

	case "update_net_class":
		var p struct {
			ProjectPath string             `json:"project_path"`
			ClassName   string             `json:"class_name"`
			Rules       map[string]float64 `json:"rules"`
			AddPattern  string             `json:"add_pattern"`
		}
		if err := unmarshalParams(params, &p); err != nil {
			return nil, err
		}
		return project.UpdateNetClass(p.ProjectPath, p.ClassName, p.Rules, p.AddPattern)
	}
	return nil, jsonrpc2.ErrMethodNotFound
}

func unmarshalParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing params", jsonrpc2.ErrInvalidParams)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err)
	}
	return nil
}

// decodeChange maps one update_component property value onto a Change:
// null removes, a scalar sets the value, an object carries the value
// plus explicit visibility.
func decodeChange(key string, raw json.RawMessage) (*schematic.Change, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var obj struct {
			Value   *json.RawMessage `json:"value"`
			Visible *bool            `json:"visible"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: property %q: %v", jsonrpc2.ErrInvalidParams, key, err)
		}
		if obj.Value == nil {
			return nil, fmt.Errorf("%w: property %q: object value must have a 'value' key",
				jsonrpc2.ErrInvalidParams, key)
		}
		v, err := scalarString(*obj.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %v", jsonrpc2.ErrInvalidParams, key, err)
		}
		return &schematic.Change{Value: &v, Visible: obj.Visible}, nil
	}
	v, err := scalarString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: property %q: %v", jsonrpc2.ErrInvalidParams, key, err)
	}
	return &schematic.Change{Value: &v}, nil
}

func scalarString(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	default:
		return fmt.Sprintf("%v", t), nil
	}
}
