package report

import "github.com/khanhnv2901/cmsaudit/internal/whatcms"

// Report is the sole output artifact of a run.
type Report struct {
	Target   string        `json:"target"`
	CMS      *whatcms.Info `json:"cms,omitempty"`
	Messages []string      `json:"messages"`
}

// Assemble builds a report from the ordered findings. cms may be nil.
func Assemble(target string, cms *whatcms.Info, messages []string) *Report {
	msgs := make([]string, len(messages))
	copy(msgs, messages)
	return &Report{
		Target:   target,
		CMS:      cms,
		Messages: msgs,
	}
}

// Minimal builds a report that carries a single message and no CMS payload.
func Minimal(target, message string) *Report {
	return &Report{
		Target:   target,
		Messages: []string{message},
	}
}
