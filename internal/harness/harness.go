package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/zkarith/internal/engine"
	"github.com/roach88/zkarith/internal/trace"
)

// Run executes a scenario in a fresh engine and returns the result.
//
// Execution flow:
//  1. Build an engine with the scenario's modules, limits and fixed id
//  2. Process the events
//  3. Compare a failure against expect.error
//  4. Commit, check limits, evaluate assertions
//
// The returned error is reserved for scenarios that cannot run at all;
// mismatches are reported through Result.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult(scenario.ConflationID())

	eng, err := engine.New(
		engine.WithModules(scenario.Modules...),
		engine.WithLimits(engine.Limits(scenario.Limits)),
		engine.WithIDGenerator(engine.NewFixedGenerator(result.Conflation)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	err = eng.Process(ctx, scenario.Events)
	var res *engine.Result
	if err == nil {
		res, err = eng.Commit()
	}
	result.Events = eng.Clock().Current()

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		result.ErrorCode = errorCode(err)
		switch {
		case scenario.Expect == nil:
			result.AddError(fmt.Sprintf("conflation failed: %v", err))
		case scenario.Expect.Error != result.ErrorCode:
			result.AddError(fmt.Sprintf("expected error %s, got %s: %v", scenario.Expect.Error, result.ErrorCode, err))
		}
		return result, nil
	}
	if scenario.Expect != nil {
		result.AddError(fmt.Sprintf("expected error %s, conflation succeeded", scenario.Expect.Error))
		return result, nil
	}

	result.addTraces(res.Traces)
	result.Overflows = eng.CheckLimits(res.Traces)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func errorCode(err error) string {
	var runtimeErr *engine.RuntimeError
	if errors.As(err, &runtimeErr) {
		return string(runtimeErr.Code)
	}
	var traceErr *trace.Error
	if errors.As(err, &traceErr) {
		return string(traceErr.Code)
	}
	return "ERROR"
}
