package preprocessor

// condFrame is one entry in the conditional-inclusion stack: a nested
// block is "emitting" iff every frame on the stack has Active &&
// ParentActive. EverActive tracks whether any branch of this group has
// been taken yet, so #elif only flips Active when no prior branch won.
type condFrame struct {
	Active       bool
	EverActive   bool
	ParentActive bool
	SawElse      bool
}

// condStack tracks nested #if/#ifdef/#ifndef groups for one file's PP
// pass. It is per-file because an #include starts a fresh, empty
// stack: conditional state never crosses an include boundary in
// either direction.
type condStack struct {
	frames []condFrame
}

// Emitting reports whether tokens at the current nesting level should
// be emitted to the output stream.
func (c *condStack) Emitting() bool {
	if len(c.frames) == 0 {
		return true
	}
	f := c.frames[len(c.frames)-1]
	return f.Active && f.ParentActive
}

func (c *condStack) parentActive() bool {
	if len(c.frames) == 0 {
		return true
	}
	return c.Emitting()
}

// PushIf opens a new #if/#ifdef/#ifndef group with the given initial
// condition result.
func (c *condStack) PushIf(active bool) {
	c.frames = append(c.frames, condFrame{
		Active: active, EverActive: active, ParentActive: c.parentActive(),
	})
}

// Elif transitions the top frame to a new #elif branch; it is a no-op
// (branch stays inactive) if an earlier branch in this group already
// won or #else was already seen.
func (c *condStack) Elif(cond bool) bool {
	if len(c.frames) == 0 {
		return false // malformed; caller reports the error
	}
	f := &c.frames[len(c.frames)-1]
	if f.SawElse {
		return false
	}
	if f.EverActive {
		f.Active = false
		return true
	}
	f.Active = cond
	f.EverActive = cond
	return true
}

// Else transitions the top frame to its #else branch.
func (c *condStack) Else() bool {
	if len(c.frames) == 0 {
		return false
	}
	f := &c.frames[len(c.frames)-1]
	if f.SawElse {
		return false
	}
	f.SawElse = true
	f.Active = !f.EverActive
	f.EverActive = true
	return true
}

// Pop closes the innermost group at #endif. Returns false if there was
// no group open (unmatched #endif).
func (c *condStack) Pop() bool {
	if len(c.frames) == 0 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

// Depth returns the current nesting depth, for #endif/#else/#elif
// balance checking at end of file.
func (c *condStack) Depth() int { return len(c.frames) }
