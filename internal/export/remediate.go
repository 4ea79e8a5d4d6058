package export

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenepack/internal/logger"
	"github.com/Faultbox/scenepack/internal/scene"
)

// State is the remediation controller's position in the scan loop.
type State int

const (
	StateScanning State = iota
	StateClean
	StateOverBudget
	StateUnsupportedFound
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateOverBudget:
		return "over budget"
	case StateUnsupportedFound:
		return "unsupported content found"
	default:
		return "scanning"
	}
}

// Action is a user resolution for unsupported findings.
type Action int

const (
	// ActionAbort stops the attempt with the findings reported.
	ActionAbort Action = iota
	// ActionDeleteAll permanently removes every flagged object.
	ActionDeleteAll
	// ActionCleanAll strips only the unsupported capabilities from every
	// flagged object, leaving the objects and their supported capabilities.
	ActionCleanAll
	// ActionIgnoreAll proceeds to export with the findings bypassed for
	// this run only.
	ActionIgnoreAll
)

// Prompter decides how to resolve a set of unsupported findings.
type Prompter interface {
	Resolve(findings []Finding) Action
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(findings []Finding) Action

// Resolve calls f.
func (f PrompterFunc) Resolve(findings []Finding) Action {
	return f(findings)
}

// Controller drives the scan / remediate / re-scan loop until the scene is
// exportable, the findings are ignored, or the attempt is aborted. It never
// assumes convergence after one pass: a remediation can surface new findings
// or flip the scene over budget, so it keeps looping.
type Controller struct {
	scene    scene.Scene
	scanner  *Scanner
	budget   Budget
	prompter Prompter

	state State
}

// NewController builds a remediation controller. A nil prompter aborts on
// any unsupported finding.
func NewController(sc scene.Scene, scanner *Scanner, budget Budget, prompter Prompter) *Controller {
	if prompter == nil {
		prompter = PrompterFunc(func([]Finding) Action { return ActionAbort })
	}
	return &Controller{scene: sc, scanner: scanner, budget: budget, prompter: prompter}
}

// State returns the controller's last observed state.
func (c *Controller) State() State {
	return c.state
}

// Run loops until it can hand a scan result to the exporter. On success the
// returned result may still contain findings (when they were ignored); the
// report is always the complexity evaluation of the returned result,
// re-checked silently after every remediation before committing to export.
func (c *Controller) Run() (*ScanResult, Report, error) {
	for {
		c.state = StateScanning
		result := c.scanner.Scan(c.scene)
		report := c.budget.Evaluate(result.Triangles, result.LightCount, result.ColliderObjects)

		if len(result.Findings) > 0 {
			c.state = StateUnsupportedFound
			logger.Log.Info("unsupported content found",
				zap.Int("objects", len(result.Findings)),
				zap.String("summary", SummaryLine(findingCategories(result.Findings))))

			switch c.prompter.Resolve(result.Findings) {
			case ActionDeleteAll:
				if err := c.deleteAll(result.Findings); err != nil {
					return result, report, err
				}
				continue

			case ActionCleanAll:
				if err := c.cleanAll(result.Findings); err != nil {
					return result, report, err
				}
				continue

			case ActionIgnoreAll:
				logger.Log.Info("unsupported content ignored for this export")

			default:
				return result, report, &UnsupportedContentError{Findings: result.Findings, Report: report}
			}
		}

		if !report.WithinLimit() {
			c.state = StateOverBudget
			return result, report, &BudgetExceededError{Report: report}
		}

		c.state = StateClean
		return result, report, nil
	}
}

// deleteAll removes every flagged object from the scene as one batch.
func (c *Controller) deleteAll(findings []Finding) error {
	objects := make([]scene.Object, len(findings))
	for i, f := range findings {
		objects[i] = f.Object
	}
	if err := c.scene.DeleteObjects(objects); err != nil {
		return fmt.Errorf("deleting flagged objects: %w", err)
	}
	logger.Log.Info("deleted flagged objects", zap.Int("count", len(objects)))
	return nil
}

// cleanAll strips only the unsupported capabilities from every flagged
// object as one batch; transforms are never in the removal set.
func (c *Controller) cleanAll(findings []Finding) error {
	var removals []scene.CapabilityRemoval
	for _, f := range findings {
		for _, cp := range f.Unsupported {
			removals = append(removals, scene.CapabilityRemoval{Object: f.Object, Capability: cp})
		}
	}
	if err := c.scene.RemoveCapabilities(removals); err != nil {
		return fmt.Errorf("cleaning flagged objects: %w", err)
	}
	logger.Log.Info("removed unsupported capabilities", zap.Int("count", len(removals)))
	return nil
}
