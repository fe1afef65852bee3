// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the ruleset from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Ruleset, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "ruleset.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema. Working/committed values are arbitrary JSON
	// scalars or collections, so they decode as cty.Value first.
	type hclKeyRule struct {
		Key       string    `hcl:"key"`
		Working   cty.Value `hcl:"working"`
		Committed cty.Value `hcl:"committed"`
	}
	type hclPattern struct {
		Path   string       `hcl:"path"`
		Indent int          `hcl:"indent,optional"`
		Keys   []hclKeyRule `hcl:"key,block"`
	}
	type hclRuleset struct {
		Patterns []hclPattern `hcl:"pattern,block"`
	}

	// Decode HCL
	var hclRS hclRuleset
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclRS)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	rs := &Ruleset{}
	for _, hp := range hclRS.Patterns {
		group := PatternGroup{
			Path:   hp.Path,
			Indent: hp.Indent,
		}
		for _, hk := range hp.Keys {
			working, err := ctyToGo(hk.Working)
			if err != nil {
				return nil, errors.Errorf("decoding working value for key %q: %w", hk.Key, err)
			}
			committed, err := ctyToGo(hk.Committed)
			if err != nil {
				return nil, errors.Errorf("decoding committed value for key %q: %w", hk.Key, err)
			}
			group.Keys = append(group.Keys, KeyRule{
				Key:       hk.Key,
				Working:   working,
				Committed: committed,
			})
		}
		rs.Patterns = append(rs.Patterns, group)
	}

	return rs, nil
}

// 🔄 ctyToGo converts a cty value to its plain Go JSON representation
func ctyToGo(v cty.Value) (any, error) {
	data, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, errors.Errorf("marshaling cty value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Errorf("unmarshaling cty value: %w", err)
	}
	return out, nil
}
