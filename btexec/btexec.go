// Package btexec adapts a solved card sequence into a behavior-tree node so
// the external executor can drive it tick by tick.
package btexec

import (
	bt "github.com/joeycumines/go-behaviortree"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/ragdoll"
)

// PlanNode wraps a plan in a sequence: each card runs to success before the
// next starts; an interrupted card fails the whole plan.
func PlanNode(plan []*cards.GoodSection, provider ragdoll.Provider, dt float64) bt.Node {
	children := make([]bt.Node, 0, len(plan))
	for _, card := range plan {
		children = append(children, CardNode(card, provider, dt))
	}

	return bt.New(bt.Sequence, children...)
}

// CardNode drives one card's Execute/Update/Stop contract: executing reports
// Running, success maps to Success, interruption or an infeasible start maps
// to Failure.
func CardNode(card *cards.GoodSection, provider ragdoll.Provider, dt float64) bt.Node {
	return bt.New(func(children []bt.Node) (bt.Status, error) {
		s := provider.Snapshot()

		switch card.Phase() {
		case cards.PhaseIdle:
			if !card.Execute(s) {
				return bt.Failure, nil
			}
			if card.Phase() == cards.PhaseSuccess {
				// empty action stack completes immediately
				return bt.Success, nil
			}
			return bt.Running, nil

		case cards.PhaseExecuting:
			if card.Update(dt, s) {
				return bt.Running, nil
			}
			if card.Phase() == cards.PhaseSuccess {
				return bt.Success, nil
			}
			return bt.Failure, nil

		case cards.PhaseSuccess:
			return bt.Success, nil
		}

		return bt.Failure, nil
	})
}
