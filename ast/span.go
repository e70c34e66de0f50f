/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ast

// Span is a half-open [Start, End) byte range into a specific text buffer.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// Source identifies a text buffer that spans index into.
type Source struct {
	// File is the path the buffer was read from, if any.
	File string

	// Code is the buffer's content.
	Code string
}

// Offsets pairs a fixed input-side span with an output-side span that is
// populated once per tracked serialization pass. A node may carry several
// independent Offsets, one per printable field.
type Offsets struct {
	// Original identifies the buffer Src indexes into.
	Original *Source

	// Generated identifies the buffer Dst indexes into.
	Generated *Source

	// Src is the field's byte range in the original source, fixed at parse
	// or construction time.
	Src Span

	// Dst is the field's byte range in the generated output. It is nil until
	// the printer runs in tracking mode.
	Dst *Span
}

// Clone returns a copy of the offsets with Dst cleared, for nodes that are
// duplicated during optimization. Each printed node needs its own Dst.
func (o *Offsets) Clone() *Offsets {
	if o == nil {
		return nil
	}
	return &Offsets{Original: o.Original, Generated: o.Generated, Src: o.Src}
}
