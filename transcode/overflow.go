// SPDX-License-Identifier: EPL-2.0

package transcode

import "github.com/ik5/pcmbridge/pcm"

// overflow holds remixed samples that did not fit the encoder slot they were
// produced for, together with the timestamp of the first of them. Empty means
// position 0 and limit 0.
type overflow struct {
	view  *pcm.View
	ptsUs int64
}

func (o *overflow) pending() bool {
	return o.view != nil && o.view.HasRemaining()
}

// samples is how many retained samples are still waiting for the encoder.
func (o *overflow) samples() int {
	if o.view == nil {
		return 0
	}
	return o.view.Remaining()
}

// reserve makes room for n samples. It must only be called while empty.
func (o *overflow) reserve(n int) {
	if o.view == nil {
		o.view = pcm.NewView(n)
		return
	}
	o.view.Grow(n)
}

// headPtsUs is the timestamp of the next sample to leave the overflow.
func (o *overflow) headPtsUs(rate, channels int) int64 {
	return o.ptsUs + pcm.DurationUs(o.view.Position(), rate, channels)
}
