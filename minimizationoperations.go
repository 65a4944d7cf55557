package dfamin

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MissingTransitionPolicy Selects how undefined transitions take part in minimization.
type MissingTransitionPolicy int

const (
	// DistinguishMissing States that define transitions on different sets of symbols are distinguishable.
	// All members of a class then agree on every transition.
	DistinguishMissing = MissingTransitionPolicy(iota)

	// ImplicitSink Undefined transitions go to a non-accepting sink. States that only differ in transitions
	// into dead states are merged, dead states are dropped, and the result is the minimal trim automaton.
	ImplicitSink
)

func (p MissingTransitionPolicy) String() string {
	switch p {
	case DistinguishMissing:
		return "distinguish-missing"
	case ImplicitSink:
		return "implicit-sink"
	default:
		return fmt.Sprintf("MissingTransitionPolicy(%d)", int(p))
	}
}

// ParseMissingTransitionPolicy Parses the String form of a policy.
func ParseMissingTransitionPolicy(s string) (MissingTransitionPolicy, error) {
	switch s {
	case "distinguish-missing", "":
		return DistinguishMissing, nil
	case "implicit-sink":
		return ImplicitSink, nil
	default:
		return DistinguishMissing, fmt.Errorf("unknown missing transition policy %q", s)
	}
}

type minimizeOptions struct {
	policy MissingTransitionPolicy
	logger logrus.FieldLogger
}

type MinimizeOption func(*minimizeOptions)

func WithMissingTransitions(policy MissingTransitionPolicy) MinimizeOption {
	return func(o *minimizeOptions) {
		o.policy = policy
	}
}

func WithLogger(logger logrus.FieldLogger) MinimizeOption {
	return func(o *minimizeOptions) {
		o.logger = logger
	}
}

func newMinimizeOptions(options ...MinimizeOption) *minimizeOptions {
	opts := &minimizeOptions{
		policy: DistinguishMissing,
		logger: logrus.StandardLogger(),
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}

// Minimize
// Returns the minimal automaton equivalent to the reachable part of a, using the table-filling algorithm.
// Unreachable states never appear in the result. The result numbers its states by the smallest original
// member of each class, so minimizing the same automaton twice yields identical automata.
//
// All intermediate structures are local to the call; concurrent calls are safe.
func Minimize(a *Automaton, options ...MinimizeOption) *Automaton {
	opts := newMinimizeOptions(options...)

	reachable := ReachableStates(a)

	var index *InverseIndex
	if opts.policy == ImplicitSink {
		index = NewCompletedInverseIndex(a)
	} else {
		index = NewInverseIndex(a)
	}

	table := MarkDistinguishable(a, reachable, index)

	live := reachable
	if sink := index.Sink(); sink >= 0 {
		live = reachable.Clone()
		live.Set(uint(sink))
	}
	partition := BuildEquivalenceClasses(live, table)

	result := BuildMinimal(a, partition)

	opts.logger.WithFields(logrus.Fields{
		"policy":    opts.policy.String(),
		"states":    a.GetNumStates(),
		"reachable": reachable.Count(),
		"marked":    table.NumMarked(),
		"classes":   partition.Len(),
		"minimal":   result.GetNumStates(),
	}).Debug("minimized automaton")

	return result
}

// BuildMinimal
// Projects a onto the classes of partition. Class i becomes state i, the start state is the class of the
// original start state, and a class accepts if any member accepts. For each symbol, the first member (in
// ascending order) that defines a transition decides the target class.
//
// If the partition covers one state more than a, that state is the virtual sink of
// NewCompletedInverseIndex. Its class is dead: it is dropped along with every transition into it, unless it
// holds the start state, in which case the result is a single non-accepting state without transitions.
func BuildMinimal(a *Automaton, partition *Partition) *Automaton {
	numStates := a.GetNumStates()
	deadClass := -1
	if len(partition.ClassOf) > numStates {
		deadClass = partition.ClassOf[numStates]
	}
	startClass := partition.ClassOf[a.GetStart()]

	b := NewBuilderV1(partition.Len(), a.GetNumTransitions())
	newState := make([]int, partition.Len())
	for c := range partition.Classes {
		if c == deadClass && c != startClass {
			newState[c] = -1
			continue
		}
		newState[c] = b.CreateState()
	}
	b.SetStart(newState[startClass])

	t := NewTransition()
	defined := make(map[rune]struct{})
	for c, members := range partition.Classes {
		source := newState[c]
		if source == -1 {
			continue
		}
		clear(defined)

		for _, s := range members {
			if s >= numStates {
				continue
			}
			if a.IsAccept(s) {
				b.SetAccept(source, true)
			}
			count := a.InitTransition(s, t)
			for i := 0; i < count; i++ {
				a.GetNextTransition(t)
				target := partition.ClassOf[t.Dest]
				if target == deadClass {
					continue
				}
				if _, ok := defined[t.Label]; ok {
					continue
				}
				defined[t.Label] = struct{}{}
				b.AddTransition(source, t.Label, newState[target])
			}
		}
	}

	return b.freeze()
}
