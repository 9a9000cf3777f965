package domain

type ScenarioStatus string

const (
	ScenarioActive   ScenarioStatus = "active"
	ScenarioMerged   ScenarioStatus = "merged"
	ScenarioArchived ScenarioStatus = "archived"
)

type ScenarioType string

const (
	ScenarioBaseline ScenarioType = "baseline"
	ScenarioBranch   ScenarioType = "branch"
	ScenarioSandbox  ScenarioType = "sandbox"
)

// MergeStrategy governs whether conflicts require manual resolution or are
// auto-resolved server-side.
type MergeStrategy string

const (
	StrategyManual         MergeStrategy = "manual"
	StrategySourcePriority MergeStrategy = "source_priority"
	StrategyTargetPriority MergeStrategy = "target_priority"
)

// ValidMergeStrategies is the canonical set of accepted strategy strings.
var ValidMergeStrategies = map[string]bool{
	"manual": true, "source_priority": true, "target_priority": true,
}

// ResolutionChoice is the user's decision for a single conflict.
type ResolutionChoice string

const (
	ResolutionUnset  ResolutionChoice = ""
	ResolutionSource ResolutionChoice = "source"
	ResolutionTarget ResolutionChoice = "target"
)

// Conflict types are an open set; these are the kinds the server is known
// to emit today. Unknown types are rendered as-is.
const (
	ConflictAssignment    = "assignment"
	ConflictPhaseTimeline = "phase_timeline"
	ConflictProjectDetail = "project_detail"
)

type ProjectPriority int

const (
	PriorityHigh   ProjectPriority = 1
	PriorityMedium ProjectPriority = 2
	PriorityLow    ProjectPriority = 3
)
