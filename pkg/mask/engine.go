package mask

// engine runs one top-level match over data.
type engine struct {
	rules []Rule
	sc    *Scratch
	data  []byte
	// expanded counts wildcard states resolved without a failure hit.
	expanded int
}

// run matches rules[i:] against data[begin:], where strictBegin is the last
// offset at which the field of rules[i] may start.
func (e *engine) run(i, begin, strictBegin int) bool {
	end := len(e.data)
	for i < len(e.rules) {
		res, next, fieldEnd := e.rules[i].check(e.data, begin, strictBegin, &e.sc.memo[i])
		switch res {
		case resultFull:
			begin, strictBegin = next, next
			i++

		case resultGreedy:
			if i+1 == len(e.rules) {
				// The last wildcard takes everything it can reach.
				return fieldEnd == end
			}
			return e.resolve(i, next, fieldEnd)

		default:
			return false
		}
	}
	return begin == end
}

// resolve reports whether the rest of the sequence matches after some
// consumption of wildcard rules[i] starting at fieldBegin.
//
// fieldEnd is a function of i and fieldBegin, so a failure is recorded per
// (i, fieldBegin) and every wildcard state is expanded at most once.
func (e *engine) resolve(i, fieldBegin, fieldEnd int) bool {
	if e.sc.failedAt(i, fieldBegin) {
		return false
	}
	e.expanded++
	if e.consume(i, fieldBegin, fieldEnd) {
		return true
	}
	e.sc.markFailed(i, fieldBegin)
	return false
}

// consume tries the consumptions of wildcard rules[i], shortest first.
func (e *engine) consume(i, fieldBegin, fieldEnd int) bool {
	nextRule := &e.rules[i+1]
	if nextRule.Kind != KindFixed {
		for k := fieldBegin; k <= fieldEnd; k++ {
			if e.run(i+1, k, fieldEnd) {
				return true
			}
		}
		return false
	}

	for k := fieldBegin; k <= fieldEnd; {
		res, after, _ := nextRule.check(e.data, k, fieldEnd, &e.sc.memo[i+1])
		if res != resultFull {
			// No occurrence from k on, longer consumptions cannot find one either.
			return false
		}
		if e.run(i+2, after, after) {
			return true
		}
		// Every consumption up to this occurrence lands on it again.
		k = after - len(nextRule.Literal) + 1
	}
	return false
}
