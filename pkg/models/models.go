package models

// IdeDescriptor describes one supported IDE installation family
type IdeDescriptor struct {
	Name        string // Identifier, e.g. "PyCharm"
	Prefix      string // Config subdirectory name prefix, e.g. "PyCharm" matches "PyCharm2022.1"
	ConfigRoot  string // Parent directory holding the versioned config directories
	Icon        string // Symbolic icon name, e.g. "pycharm"
	DesktopFile string // Desktop entry used to launch the IDE
}

// RecentProjectRecord is one path listed in an IDE's recent projects file
type RecentProjectRecord struct {
	Path      string
	Timestamp int64 // Milliseconds since epoch, 0 when unknown
}

// IdeProject represents a recent project owned by one IDE
type IdeProject struct {
	Name      string
	Path      string
	IDE       string
	Timestamp int64
}

// RankedResult pairs a project with its composite score
type RankedResult struct {
	Project IdeProject
	Score   float64
}

// LaunchAction opens ProjectPath with the IDE registered under DesktopFile
type LaunchAction struct {
	Text        string
	DesktopFile string
	ProjectPath string
}

// Item is a displayable result handed to the host
type Item struct {
	ID         string
	Text       string
	Subtext    string
	Icon       string
	Completion string
	Actions    []LaunchAction
}
