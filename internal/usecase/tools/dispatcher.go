// Package tools exposes the knowledge base and the power-analysis functions as
// named tools with JSON arguments, the shape an assistant calls them in.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// Tool names.
const (
	SearchStatsKnowledge = "search_stats_knowledge"
	CalcSampleSize       = "calc_sample_size"
	CalcPower            = "calc_power"
	CalcEffectSize       = "calc_effect_size"
	MDECalculator        = "mde_calculator"
	PowerCurve           = "power_curve"
)

// Definition describes a tool to the caller.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type handler func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes tool calls by name.
type Dispatcher struct {
	searcher Searcher
	handlers map[string]handler
	logger   *zap.Logger
}

// New creates a dispatcher. searcher may be nil, in which case the search tool
// is not offered.
func New(searcher Searcher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{searcher: searcher, logger: logger}
	d.handlers = map[string]handler{
		CalcSampleSize: d.calcSampleSize,
		CalcPower:      d.calcPower,
		CalcEffectSize: d.calcEffectSize,
		MDECalculator:  d.mdeCalculator,
		PowerCurve:     d.powerCurve,
	}
	if searcher != nil {
		d.handlers[SearchStatsKnowledge] = d.searchKnowledge
	}
	return d
}

// Definitions lists the offered tools in a stable order.
func (d *Dispatcher) Definitions() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		if _, ok := d.handlers[def.Name]; ok {
			out = append(out, def)
		}
	}
	return out
}

// Call runs the named tool. Unknown names fail with domain.ErrUnknownTool and
// malformed arguments with domain.ErrInvalidInput.
func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrUnknownTool)
	}

	start := time.Now()
	out, err := h(ctx, args)
	if err != nil {
		d.logger.Debug("Tool call failed",
			zap.String("tool", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// decodeArgs decodes a JSON object into v. Empty args decode as {}; unknown fields are ignored.
func decodeArgs(args json.RawMessage, v any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode arguments: %w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
