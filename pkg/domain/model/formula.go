package model

// Formula is a rendered Homebrew formula
type Formula struct {
	ClassName string // Ruby class name derived from the repository name
	FileName  string // File name inside the tap, e.g. "demo.rb"
	Text      string // Complete formula source
}
