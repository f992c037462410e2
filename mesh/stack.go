package mesh

// EdgeStack is a LIFO work list of half-edges. Pop and Peek return NoEdge
// when it is empty.
type EdgeStack []EdgeID

func (s *EdgeStack) Push(e EdgeID) {
	*s = append(*s, e)
}

func (s *EdgeStack) Pop() EdgeID {
	if len(*s) == 0 {
		return NoEdge
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e
}

func (s *EdgeStack) Peek() EdgeID {
	if len(*s) == 0 {
		return NoEdge
	}
	return (*s)[len(*s)-1]
}

func (s *EdgeStack) Empty() bool {
	return len(*s) == 0
}
