package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/zkarith/internal/add"
	"github.com/roach88/zkarith/internal/ecdata"
	"github.com/roach88/zkarith/internal/ext"
	"github.com/roach88/zkarith/internal/mod"
	"github.com/roach88/zkarith/internal/module"
	"github.com/roach88/zkarith/internal/oob"
	"github.com/roach88/zkarith/internal/shf"
	"github.com/roach88/zkarith/internal/trace"
	"github.com/roach88/zkarith/internal/wcp"
)

// moduleOrder lists every module, callees before callers. Events, scopes and
// commits follow this order.
var moduleOrder = []string{add.Name, mod.Name, ext.Name, wcp.Name, shf.Name, ecdata.Name, oob.Name}

// dependencies lists the modules a module calls into. Enabling a module
// enables its callees, since their rows are the other half of every link.
var dependencies = map[string][]string{
	ecdata.Name: {wcp.Name, ext.Name},
	oob.Name:    {add.Name, mod.Name, wcp.Name},
}

// ModuleNames returns every module name in dispatch order.
func ModuleNames() []string {
	return slices.Clone(moduleOrder)
}

// Layout returns the column headers of the named module.
func Layout(name string) ([]trace.ColumnHeader, error) {
	set, err := buildModules([]string{name})
	if err != nil {
		return nil, err
	}
	return set.byName[name].Columns(), nil
}

// moduleSet is the wired module graph of one engine.
type moduleSet struct {
	list   []module.Module
	byName map[string]module.Module
}

// resolveModules closes names over dependencies. Empty means all.
func resolveModules(names []string) (map[string]bool, error) {
	if len(names) == 0 {
		names = moduleOrder
	}
	enabled := make(map[string]bool, len(moduleOrder))
	var visit func(string) error
	visit = func(n string) error {
		if !slices.Contains(moduleOrder, n) {
			return &RuntimeError{Code: ErrCodeUnknownModule, Message: fmt.Sprintf("unknown module %q", n), Module: n}
		}
		if enabled[n] {
			return nil
		}
		enabled[n] = true
		for _, d := range dependencies[n] {
			if err := visit(d); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range names {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return enabled, nil
}

// buildModules constructs the enabled modules and wires their exogenous
// calls.
func buildModules(names []string) (*moduleSet, error) {
	enabled, err := resolveModules(names)
	if err != nil {
		return nil, err
	}
	adder, divider, extended, comparator := add.New(), mod.New(), ext.New(), wcp.New()
	all := map[string]module.Module{
		add.Name:    adder,
		mod.Name:    divider,
		ext.Name:    extended,
		wcp.Name:    comparator,
		shf.Name:    shf.New(),
		ecdata.Name: ecdata.New(comparator, extended),
		oob.Name:    oob.New(adder, divider, comparator),
	}
	set := &moduleSet{byName: make(map[string]module.Module, len(enabled))}
	for _, n := range moduleOrder {
		if enabled[n] {
			set.list = append(set.list, all[n])
			set.byName[n] = all[n]
		}
	}
	return set, nil
}
