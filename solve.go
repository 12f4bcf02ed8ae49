package main

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// solve runs the optimizer matching in.Kind and renders the result file
// content. Nothing is written here, so a failure leaves no partial output.
func solve(in *Input, cfg Config, log *zap.Logger) (string, RunReport, error) {
	log = orNop(log)
	report := RunReport{RunID: uuid.NewString(), Problem: in.Kind.String()}
	log = log.With(zap.String("run", report.RunID))

	switch in.Kind {
	case ProblemSelection:
		log.Info("[load] preferences",
			zap.Int("clients", len(in.Prefs.Clients)),
			zap.Int("items", in.Prefs.Items.Len()))
		sel, elapsed := NewSetOptimizer(in.Prefs, cfg, log).Optimize()
		out, err := FormatSelection(in.Prefs.Items, sel.Items)
		if err != nil {
			return "", report, err
		}
		report.Score = sel.Score
		report.Simple = sel.Simple
		report.Selected = sel.Items.Len()
		report.TimeMs = elapsed.Milliseconds()
		return out, report, nil

	case ProblemAssignment:
		sched, elapsed := NewScheduler(in.Registry, cfg, log).Run()
		_, total := EvaluatePlans(in.Registry, sched.Plans)
		log.Info("[score] plans replayed", zap.Int("score", total))
		report.Score = total
		report.Committed = len(sched.Plans)
		report.Discarded = sched.Discarded
		report.TimeMs = elapsed.Milliseconds()
		return FormatSchedule(sched.Plans), report, nil
	}
	return "", report, fmt.Errorf("unsupported problem kind %v", in.Kind)
}
