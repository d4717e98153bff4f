package model

// LibraryScan lists the books one activated library scanned, in scan order.
type LibraryScan struct {
	LibraryID int   `json:"library_id"`
	Books     []int `json:"books"`
}

// Solution is the ordered list of activated libraries. Across the whole
// solution every book id appears at most once.
type Solution struct {
	Libraries []LibraryScan `json:"libraries"`
}

// AddLibrary appends an activated library and returns its position.
func (s *Solution) AddLibrary(id int) int {
	s.Libraries = append(s.Libraries, LibraryScan{LibraryID: id, Books: []int{}})
	return len(s.Libraries) - 1
}

// AddBook records a scan for the library at position pos.
func (s *Solution) AddBook(pos, bookID int) {
	s.Libraries[pos].Books = append(s.Libraries[pos].Books, bookID)
}

// Len returns the number of activated libraries.
func (s *Solution) Len() int { return len(s.Libraries) }

// BookCount returns the total number of scanned books.
func (s *Solution) BookCount() int {
	n := 0
	for _, l := range s.Libraries {
		n += len(l.Books)
	}
	return n
}

// Duplicates returns the book ids appearing more than once in s.
func (s *Solution) Duplicates() []int {
	seen := make(map[int]bool)
	var dup []int
	for _, l := range s.Libraries {
		for _, b := range l.Books {
			if seen[b] {
				dup = append(dup, b)
				continue
			}
			seen[b] = true
		}
	}
	return dup
}
