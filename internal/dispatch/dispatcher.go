// Package dispatch runs a plotting task end to end: chart type lookup,
// parameter normalization and validation, parameter filtering against the
// renderer's accepted set, and a single renderer invocation. Every outcome,
// including panics, is folded into a response envelope.
package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"plotcast/internal/logger"
	"plotcast/internal/params"
	"plotcast/internal/ploterr"
	"plotcast/internal/registry"
)

// Dispatcher executes plotting tasks against a chart type registry.
type Dispatcher struct {
	registry *registry.Registry
	debug    bool
	log      *logger.Logger
}

// New creates a dispatcher. With debug set, failure responses carry a stack
// trace alongside the structured error info.
func New(reg *registry.Registry, debug bool) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		debug:    debug,
		log:      logger.Global().WithComponent("dispatch"),
	}
}

// CreatePlottingTask validates and renders one chart request. It never
// returns a Go error; every failure is reported inside the response
// envelope so the caller can relay it verbatim.
func (d *Dispatcher) CreatePlottingTask(ctx context.Context, plotType string, rawParams interface{}) *Response {
	savePath, perr := d.run(ctx, plotType, rawParams)
	if perr == nil {
		d.log.Infof("rendered %s artifact at %s", plotType, savePath)
		return successResponse(plotType, savePath)
	}

	// Each failure is logged exactly once, here. Caller mistakes are
	// warnings, generation faults are errors.
	if perr.Kind.Validation() {
		d.log.Warnf("rejected %s request: %v", plotType, perr)
	} else {
		d.log.Errorf("failed %s request: %v", plotType, perr)
	}

	var stackTrace string
	if d.debug && !perr.Kind.Validation() {
		stackTrace = string(debug.Stack())
	}
	return errorResponse(perr, stackTrace)
}

func (d *Dispatcher) run(ctx context.Context, plotType string, rawParams interface{}) (savePath string, perr *ploterr.Error) {
	defer func() {
		if r := recover(); r != nil {
			perr = ploterr.Unknown(fmt.Errorf("panic: %v", r))
		}
	}()

	desc, perr := d.registry.Descriptor(plotType)
	if perr != nil {
		return "", perr
	}

	bag, perr := params.Normalize(desc, rawParams)
	if perr != nil {
		return "", perr
	}
	if perr := params.Validate(desc, bag); perr != nil {
		return "", perr
	}

	filtered, dropped := filterAccepted(desc, bag)
	if len(dropped) > 0 {
		d.log.Debugf("dropping field(s) not accepted by %s renderer: %s",
			desc.Name, strings.Join(dropped, ", "))
	}
	if perr := checkAcceptedRequired(desc, filtered, dropped); perr != nil {
		return "", perr
	}

	savePath, err := desc.Renderer.Render(ctx, filtered)
	if err != nil {
		return "", ploterr.GenerationFailed(desc.Name, err)
	}
	return savePath, nil
}

// filterAccepted fills descriptor defaults for omitted fields and keeps only
// parameters the renderer declares it accepts. It returns the filtered bag
// and the sorted names of dropped fields; the input bag is not modified.
func filterAccepted(desc *registry.Descriptor, bag map[string]interface{}) (map[string]interface{}, []string) {
	accepts := desc.AcceptsSet()
	filtered := make(map[string]interface{}, len(bag))
	var dropped []string
	for name, value := range bag {
		if _, ok := accepts[name]; ok {
			filtered[name] = value
		} else {
			dropped = append(dropped, name)
		}
	}
	for name, value := range desc.Defaults {
		if _, present := filtered[name]; present {
			continue
		}
		if _, ok := accepts[name]; ok {
			filtered[name] = value
		}
	}
	sort.Strings(dropped)
	return filtered, dropped
}

// checkAcceptedRequired verifies no required field was lost to filtering.
// A hit here means the descriptor's accepted set disagrees with its required
// set, which callers cannot fix, so it is reported as a renderer parameter
// mismatch rather than a validation failure.
func checkAcceptedRequired(desc *registry.Descriptor, filtered map[string]interface{}, dropped []string) *ploterr.Error {
	var missing []string
	for _, field := range desc.Required {
		if _, ok := filtered[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return ploterr.Newf(ploterr.KindRendererParameterMismatch,
		"renderer for %s does not accept required field(s): %s (dropped: %s)",
		desc.Name, strings.Join(missing, ", "), strings.Join(dropped, ", ")).
		WithField(missing[0])
}
