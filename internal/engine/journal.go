package engine

// JournalNavigator is a cursor over the journal list, kept inside
// [0, length-1]. An empty list pins it to 0.
type JournalNavigator struct {
	index int
}

func (n *JournalNavigator) Index() int { return n.index }

func (n *JournalNavigator) Clamp(length int) {
	switch {
	case length <= 0 || n.index < 0:
		n.index = 0
	case n.index >= length:
		n.index = length - 1
	}
}

func (n *JournalNavigator) HasPrev() bool           { return n.index > 0 }
func (n *JournalNavigator) HasNext(length int) bool { return n.index < length-1 }

// Prev moves back one entry and reports whether it moved.
func (n *JournalNavigator) Prev() bool {
	if !n.HasPrev() {
		return false
	}
	n.index--
	return true
}

// Next moves forward one entry and reports whether it moved.
func (n *JournalNavigator) Next(length int) bool {
	if !n.HasNext(length) {
		return false
	}
	n.index++
	return true
}

// Last moves onto the newest entry.
func (n *JournalNavigator) Last(length int) {
	n.index = length - 1
	n.Clamp(length)
}

// CurrentJournal returns the journal under the cursor.
func (s *Service) CurrentJournal() (Journal, bool) {
	if len(s.journals) == 0 {
		return Journal{}, false
	}
	return s.journals[s.journal.Index()], true
}

// JournalPosition returns the cursor and the number of journals.
func (s *Service) JournalPosition() (index, total int) {
	return s.journal.Index(), len(s.journals)
}

func (s *Service) HasPrevJournal() bool { return s.journal.HasPrev() }
func (s *Service) HasNextJournal() bool { return s.journal.HasNext(len(s.journals)) }
func (s *Service) PrevJournal() bool    { return s.journal.Prev() }
func (s *Service) NextJournal() bool    { return s.journal.Next(len(s.journals)) }

// SeekJournal puts the cursor on index, clamped.
func (s *Service) SeekJournal(index int) {
	s.journal.index = index
	s.journal.Clamp(len(s.journals))
}
