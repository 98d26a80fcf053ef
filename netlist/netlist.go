package netlist

import "fmt"

// Netlist is the immutable gate-level netlist built by New. Instances,
// nets, and pins are stored as parallel slices; all cross-references
// are integer indices, never pointers (see doc.go).
type Netlist struct {
	instances  []Instance
	nets       []Net
	pins       []Pin
	byInstName map[string]int32
	byNetName  map[string]int32
	instNets   [][]int32 // instance idx -> unique net idxs touching it
	costNets   []int32   // net idxs excluding the clock net, in build order
}

// New builds a Netlist from instance specs. Net membership is derived
// entirely from pin roles: every pin names the net it belongs to, and
// New groups pins by net name in first-seen order.
//
// Validation (all return ErrInvalidNetlist, wrapped with the offending
// entity):
//   - instance names must be pairwise distinct.
//   - every pin must name a net; an empty net name is rejected (no
//     other dangling reference is possible by construction, since nets
//     are derived from pins).
//   - every net must have exactly one driver pin.
//
// Complexity: O(P) where P is the total pin count.
func New(specs []InstanceSpec) (*Netlist, error) {
	nl := &Netlist{
		byInstName: make(map[string]int32, len(specs)),
		byNetName:  make(map[string]int32),
	}

	for _, spec := range specs {
		if _, dup := nl.byInstName[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate instance name %q", ErrInvalidNetlist, spec.Name)
		}

		instIdx := int32(len(nl.instances))
		nl.byInstName[spec.Name] = instIdx
		nl.instances = append(nl.instances, Instance{Name: spec.Name, Kind: spec.Cell})

		pinIdxs := make([]int32, 0, len(spec.Pins))
		for _, p := range spec.Pins {
			if p.Net == "" {
				return nil, fmt.Errorf("%w: instance %q has a pin %q with no net reference",
					ErrInvalidNetlist, spec.Name, p.Name)
			}

			netIdx, ok := nl.byNetName[p.Net]
			if !ok {
				netIdx = int32(len(nl.nets))
				nl.byNetName[p.Net] = netIdx
				nl.nets = append(nl.nets, Net{Name: p.Net, Driver: -1, IsClock: p.Net == ClockNetName})
			}

			pinIdx := int32(len(nl.pins))
			nl.pins = append(nl.pins, Pin{Name: p.Name, InstIdx: instIdx, NetIdx: netIdx, Role: p.Role})
			pinIdxs = append(pinIdxs, pinIdx)

			switch p.Role {
			case RoleDriver:
				if nl.nets[netIdx].Driver != -1 {
					return nil, fmt.Errorf("%w: net %q has more than one driver", ErrInvalidNetlist, p.Net)
				}
				nl.nets[netIdx].Driver = pinIdx
			case RoleSink:
				nl.nets[netIdx].Sinks = append(nl.nets[netIdx].Sinks, pinIdx)
			}
		}
		nl.instances[instIdx].PinIdxs = pinIdxs
	}

	for netIdx, n := range nl.nets {
		if n.Driver == -1 {
			return nil, fmt.Errorf("%w: net %q has no driver", ErrInvalidNetlist, n.Name)
		}
		if len(n.Sinks) == 0 {
			return nil, fmt.Errorf("%w: net %q has no sinks", ErrInvalidNetlist, n.Name)
		}
		if !n.IsClock {
			nl.costNets = append(nl.costNets, int32(netIdx))
		}
	}

	nl.buildAdjacency()

	return nl, nil
}

// buildAdjacency fills instNets: for every instance, the set of unique
// net indices any of its pins touch, in first-seen order.
func (nl *Netlist) buildAdjacency() {
	nl.instNets = make([][]int32, len(nl.instances))
	for instIdx, inst := range nl.instances {
		seen := make(map[int32]bool, len(inst.PinIdxs))
		nets := make([]int32, 0, len(inst.PinIdxs))
		for _, pinIdx := range inst.PinIdxs {
			netIdx := nl.pins[pinIdx].NetIdx
			if !seen[netIdx] {
				seen[netIdx] = true
				nets = append(nets, netIdx)
			}
		}
		nl.instNets[instIdx] = nets
	}
}

// Len returns the number of instances.
func (nl *Netlist) Len() int32 { return int32(len(nl.instances)) }

// NetCount returns the number of nets.
func (nl *Netlist) NetCount() int32 { return int32(len(nl.nets)) }

// Instance looks up an instance index by name.
func (nl *Netlist) Instance(name string) (int32, bool) {
	idx, ok := nl.byInstName[name]
	return idx, ok
}

// Net looks up a net index by name.
func (nl *Netlist) Net(name string) (int32, bool) {
	idx, ok := nl.byNetName[name]
	return idx, ok
}

// InstanceByIndex returns the instance at idx.
func (nl *Netlist) InstanceByIndex(idx int32) Instance { return nl.instances[idx] }

// NetByIndex returns the net at idx.
func (nl *Netlist) NetByIndex(idx int32) Net { return nl.nets[idx] }

// PinByIndex returns the pin at idx.
func (nl *Netlist) PinByIndex(idx int32) Pin { return nl.pins[idx] }

// Instances returns every instance, in build order.
func (nl *Netlist) Instances() []Instance { return nl.instances }

// Nets returns every net, in build order.
func (nl *Netlist) Nets() []Net { return nl.nets }

// CostNets returns the indices of every non-clock net, in build order.
// This is the net set the cost model sums over (§4.2, §4.4).
func (nl *Netlist) CostNets() []int32 { return nl.costNets }

// NetsOf returns the unique net indices any pin of instIdx touches, in
// first-seen order. This is the adjacency used by the cost model to
// find which nets are affected by moving an instance (§4.4).
func (nl *Netlist) NetsOf(instIdx int32) []int32 { return nl.instNets[instIdx] }

// Fanout returns the total sink count across every net instIdx drives:
// Σ |net.Sinks| over nets where instIdx holds the driver pin (§4.2).
func (nl *Netlist) Fanout(instIdx int32) int {
	total := 0
	for _, netIdx := range nl.instNets[instIdx] {
		n := nl.nets[netIdx]
		if n.Driver >= 0 && nl.pins[n.Driver].InstIdx == instIdx {
			total += len(n.Sinks)
		}
	}
	return total
}
