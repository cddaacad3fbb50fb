package report

type Report struct {
	Run    *RunReport    `json:"run,omitempty"`
	Mirror *MirrorReport `json:"mirror,omitempty"`
}
