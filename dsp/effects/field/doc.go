// Package field implements a stereo early-reflection field: six delayed,
// filtered and panned copies of a harmonically excited mono sum, blended
// back against the dry input.
//
// A Chain owns the whole signal path. Control values arrive through a
// lock-free Controls value and are sampled once per block; RMS output
// levels travel the other way through a torn-free snapshot. Two fixed
// reflection patterns are provided as modes: Studio (tight, bright) and
// SoundSystem (wider, longer, darker).
//
// Typical use:
//
//	c, _ := field.NewChain(field.WithMode(field.ModeSoundSystem))
//	_ = c.Prepare(48000, 100)
//	c.Controls().SetFieldAmount(60)
//	_ = c.ProcessStereoInPlace(left, right)
//	lv := c.Levels()
package field
