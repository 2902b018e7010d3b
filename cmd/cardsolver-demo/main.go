package main

import (
	"flag"
	"fmt"

	"github.com/john-holland/physicscards/btexec"
	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/classify"
	"github.com/john-holland/physicscards/common/utils"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
	"github.com/john-holland/physicscards/solver"

	bt "github.com/joeycumines/go-behaviortree"
)

func main() {
	poolpath := flag.String("pool", "", "card pool JSON file (optional)")
	tickrate := flag.Float64("dt", 1.0/60.0, "simulation step in seconds")
	flag.Parse()

	world := ragdoll.NewWorld()
	world.SetRoot(vector.MakeNullVector3(), vector.MakeNullVector3())
	world.NewJoint("left_hip", vector.MakeVector3(-0.1, 0.9, 0))
	world.NewJoint("right_hip", vector.MakeVector3(0.1, 0.9, 0))
	world.NewJoint("left_knee", vector.MakeVector3(-0.1, 0.5, 0))
	world.NewJoint("right_knee", vector.MakeVector3(0.1, 0.5, 0))
	world.NewMuscle("left_hip")
	world.NewMuscle("right_hip")
	world.NewMuscle("left_knee")
	world.NewMuscle("right_knee")
	world.NewMuscle("left_foot")
	world.NewMuscle("right_foot")
	world.NewMuscle("torso_core")

	cardsolver := solver.NewSolver(classify.DefaultPolicy())

	if *poolpath != "" {
		pool, err := cards.LoadPoolFile(*poolpath)
		if err != nil {
			utils.FailWith(err)
		}
		for _, card := range pool {
			cardsolver.AddCard(card)
		}
		utils.DebugWithContext("demo", "loaded card pool", utils.Context{"cards": len(pool)})
	}

	goal := &solver.Goal{
		Name:           "walk_forward",
		Kind:           solver.GoalMove,
		TargetPosition: vector.MakeVector3(0, 0, 3),
	}

	plan := cardsolver.SolveForGoal(goal, world.Snapshot())
	if len(plan) == 0 {
		utils.Debug("demo", "no action available")
		return
	}

	for _, card := range plan {
		utils.DebugWithContext("demo", "planned card", utils.Context{"card": card.Name})
	}

	node := btexec.PlanNode(plan, world, *tickrate)

	for tick := 0; tick < 10000; tick++ {
		status, err := node.Tick()
		utils.Check(err, "behavior tree tick failed")

		if status != bt.Running {
			fmt.Println("plan finished:", status)
			return
		}
	}

	fmt.Println("plan still running after tick budget")
}
