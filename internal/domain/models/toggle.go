// internal/domain/models/toggle.go
package models

// Toggle couples a per-viewer flag with its aggregate counter.
//
// Flip is the only mutator; the flag and the counter always move together.
type Toggle struct {
	On    bool `yaml:"on" json:"on"`
	Count int  `yaml:"count" json:"count"`
}

// Flip inverts the flag and adjusts the counter by one in the same step.
func (t *Toggle) Flip() {
	if t.On {
		t.On = false
		if t.Count > 0 {
			t.Count--
		}
		return
	}
	t.On = true
	t.Count++
}
