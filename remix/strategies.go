// SPDX-License-Identifier: EPL-2.0

package remix

import "github.com/ik5/pcmbridge/pcm"

// Passthrough copies frames verbatim when both sides share a layout.
type Passthrough struct {
	Channels int
}

func (p Passthrough) InChannels() int  { return p.Channels }
func (p Passthrough) OutChannels() int { return p.Channels }
func (p Passthrough) String() string   { return "passthrough" }

func (p Passthrough) Remix(in, out *pcm.View) {
	n := frames(in, out, p.Channels, p.Channels) * p.Channels
	out.CopyFrom(in, n)
}

// Upmix duplicates each mono sample into a left and right sample.
type Upmix struct{}

func (Upmix) InChannels() int  { return 1 }
func (Upmix) OutChannels() int { return 2 }
func (Upmix) String() string   { return "upmix" }

func (Upmix) Remix(in, out *pcm.View) {
	for range frames(in, out, 1, 2) {
		s := in.Get()
		out.Put(s)
		out.Put(s)
	}
}

// Downmix averages each stereo pair into one mono sample.
type Downmix struct{}

func (Downmix) InChannels() int  { return 2 }
func (Downmix) OutChannels() int { return 1 }
func (Downmix) String() string   { return "downmix" }

func (Downmix) Remix(in, out *pcm.View) {
	for range frames(in, out, 2, 1) {
		l := in.Get()
		r := in.Get()
		out.Put(Average(l, r))
	}
}

// Average returns (l+r)/2 rounded half away from zero. The sum is taken in
// int32 and the result always fits int16.
func Average(l, r int16) int16 {
	sum := int32(l) + int32(r)
	if sum >= 0 {
		return int16((sum + 1) / 2)
	}
	return int16((sum - 1) / 2)
}
