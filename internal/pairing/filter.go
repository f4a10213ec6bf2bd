package pairing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EvaluateGroup applies the matcher to one candidate group. The Reason is
// ReasonMatched exactly when the returned Pair is meaningful.
func EvaluateGroup(group Group) (Pair, Reason) {
	if len(group.Assets) != 2 {
		return Pair{}, ReasonNotPair
	}
	first := group.Assets[0]
	second := group.Assets[1]
	firstName := first.Name()
	secondName := second.Name()

	if reason := compareNames(firstName, secondName); reason != ReasonMatched {
		return Pair{}, reason
	}

	primary, secondary := SelectPrimary(
		Candidate{ID: first.ID, Path: firstName, Ext: Extension(firstName)},
		Candidate{ID: second.ID, Path: secondName, Ext: Extension(secondName)},
	)
	return Pair{
		Key:   group.Key,
		IDs:   [2]string{primary.ID, secondary.ID},
		Paths: [2]string{primary.Path, secondary.Path},
		Exts:  [2]string{primary.Ext, secondary.Ext},
	}, ReasonMatched
}

// FilterDupePairs keeps the groups that form a matched pair, in input order.
// Groups that are not pairs or do not match are skipped, never fatal.
func FilterDupePairs(groups []Group) []Pair {
	pairs := make([]Pair, 0, len(groups))
	for _, group := range groups {
		if pair, reason := EvaluateGroup(group); reason == ReasonMatched {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// Decision is the outcome of evaluating one group.
type Decision struct {
	Group  Group
	Pair   Pair
	Reason Reason
}

// Matched reports whether the group produced a pair.
func (d Decision) Matched() bool {
	return d.Reason == ReasonMatched
}

// EvaluateGroups evaluates every group on up to workers goroutines. The
// decisions are returned in input order.
func EvaluateGroups(ctx context.Context, groups []Group, workers int) ([]Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decisions := make([]Decision, len(groups))
	if workers <= 1 || len(groups) < 2 {
		for i, group := range groups {
			pair, reason := EvaluateGroup(group)
			decisions[i] = Decision{Group: group, Pair: pair, Reason: reason}
		}
		return decisions, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pair, reason := EvaluateGroup(groups[i])
			decisions[i] = Decision{Group: groups[i], Pair: pair, Reason: reason}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decisions, nil
}

// FilterDupePairsConcurrent evaluates groups on up to workers goroutines and
// returns the same pairs, in the same order, as FilterDupePairs. It only
// fails when ctx is cancelled.
func FilterDupePairsConcurrent(ctx context.Context, groups []Group, workers int) ([]Pair, error) {
	decisions, err := EvaluateGroups(ctx, groups, workers)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(decisions))
	for _, decision := range decisions {
		if decision.Matched() {
			pairs = append(pairs, decision.Pair)
		}
	}
	return pairs, nil
}
