package process

// InstanceID identifies one spawn of a Process, monotonically increasing
// within the owning Process's lifetime. It salts SuccessId so that two
// instances of the same Process (e.g. after a restart) never produce
// value-equal successes.
type InstanceID uint32

// instanceIDGen yields successive InstanceIDs, starting at 0.
type instanceIDGen struct {
	next InstanceID
}

// generate returns the next InstanceID and advances the generator.
func (g *instanceIDGen) generate() InstanceID {
	id := g.next
	g.next++
	return id
}

// SuccessID identifies one success event: the instance it occurred in, plus
// a monotonic index within that instance. Two distinct successes of the
// same process (e.g. a watcher re-entering success after an edit) are
// guaranteed to compare unequal, so the Dependency Tracker re-triggers
// downstream processes on every fresh success rather than only on the edge
// into success.
type SuccessID struct {
	Instance InstanceID
	Index    uint64
}

// successIDGen yields successive SuccessIDs for one instance.
type successIDGen struct {
	instance InstanceID
	next     uint64
}

func newSuccessIDGen(instance InstanceID) successIDGen {
	return successIDGen{instance: instance}
}

func (g *successIDGen) generate() SuccessID {
	id := SuccessID{Instance: g.instance, Index: g.next}
	g.next++
	return id
}
