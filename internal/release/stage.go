package release

// Stage is a state of the release state machine
type Stage int

const (
	StageInit Stage = iota
	StageBranchCheck
	StageSync
	StageVersionDiscovery
	StageConfirm
	StageWriting
	StageCommit
	StageTag
	StagePushTag
	StagePushBranch
	StageReturnToDevelop
	StageDone
	StageAborted
)

var stageNames = map[Stage]string{
	StageInit:             "init",
	StageBranchCheck:      "branch-check",
	StageSync:             "sync",
	StageVersionDiscovery: "version-discovery",
	StageConfirm:          "confirm",
	StageWriting:          "writing",
	StageCommit:           "commit",
	StageTag:              "tag",
	StagePushTag:          "push-tag",
	StagePushBranch:       "push-branch",
	StageReturnToDevelop:  "return-to-develop",
	StageDone:             "done",
	StageAborted:          "aborted",
}

var stageDescriptions = map[Stage]string{
	StageInit:             "Checking options",
	StageBranchCheck:      "Checking branch",
	StageSync:             "Syncing with remote",
	StageVersionDiscovery: "Discovering current version",
	StageConfirm:          "Planning release",
	StageWriting:          "Writing version files",
	StageCommit:           "Committing",
	StageTag:              "Tagging",
	StagePushTag:          "Pushing tags",
	StagePushBranch:       "Pushing branch",
	StageReturnToDevelop:  "Returning to develop",
	StageDone:             "Released",
	StageAborted:          "Aborted",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Description is the human readable label shown while the stage runs
func (s Stage) Description() string {
	if d, ok := stageDescriptions[s]; ok {
		return d
	}
	return s.String()
}

// Status is the outcome reported for a stage
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)
