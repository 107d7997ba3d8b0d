package chunked

// prediction is one entry of predictions_made: a slot in the current
// generation together with the offset within that slab's chunk (§4.L).
type prediction struct {
	slot   int
	offset int
}

// OracleCache is a prefetching chunk cache that keeps two generations of up
// to K slabs (cur, nxt) and swaps reusable slabs between them as the bound
// oracle stream is consumed (§4.L). Unlike LRUCache it never evicts on a
// miss path that the caller observes directly: misses are resolved in
// batches, ahead of time, against the oracle's own predicted order.
type OracleCache struct {
	k               int
	maxPredictions  int
	stream          *OracleStream
	cur, nxt        []*Chunk
	curID, nxtID    map[int]int // chunk_id -> slot index
	predictionsMade []prediction
	consumed        int
}

// NewOracleCache builds a cache of capacity k slabs, each created by create,
// streaming predictions from stream. maxPredictions bounds how many future
// indices are pulled from the stream per populate batch.
func NewOracleCache(k int, maxPredictions int, stream *OracleStream, create func() *Chunk) *OracleCache {
	cur := make([]*Chunk, k)
	for i := range cur {
		cur[i] = create()
	}
	return &OracleCache{
		k:              k,
		maxPredictions: maxPredictions,
		stream:         stream,
		cur:            cur,
		nxt:            make([]*Chunk, k),
		curID:          make(map[int]int),
		nxtID:          make(map[int]int),
	}
}

// NextChunk implements next_chunk (§4.L). identify maps a predicted
// primary-axis index to (chunk_id, intra_chunk_offset). allocate sizes a
// freshly swapped-in slab if needed. populate fills, in one batched pass,
// the slabs at the slot indices listed in needed (chunkIDs[k] is the chunk
// id owning needed[k]) from the new generation.
func (c *OracleCache) NextChunk(
	identify func(predicted int) (chunkID, offset int),
	allocate func(slab *Chunk),
	populate func(needed []int, chunkIDs []int, nxt []*Chunk),
) (*Chunk, int) {
	if c.consumed < len(c.predictionsMade) {
		p := c.predictionsMade[c.consumed]
		c.consumed++
		return c.cur[p.slot], p.offset
	}

	// Step 2: pull up to maxPredictions future indices, assigning slots in
	// the new generation.
	c.nxtID = make(map[int]int)
	// Slabs left in nxt by the previous batch are unreferenced; move them
	// into cur's empty slots so they stay available as donors below.
	free := 0
	for i, s := range c.nxt {
		if s == nil {
			continue
		}
		for c.cur[free] != nil {
			free++
		}
		c.cur[free] = s
		c.nxt[i] = nil
	}
	var needed, neededIDs []int
	batch := make([]prediction, 0, c.maxPredictions)
	u := 0

	for len(batch) < c.maxPredictions {
		predicted, ok := c.stream.Next()
		if !ok {
			break
		}
		chunkID, offset := identify(predicted)

		if slot, ok := c.nxtID[chunkID]; ok {
			batch = append(batch, prediction{slot: slot, offset: offset})
			continue
		}

		if u == c.k {
			c.stream.Back()
			break
		}
		slot := u
		u++
		c.nxtID[chunkID] = slot
		if oldSlot, ok := c.curID[chunkID]; ok {
			c.nxt[slot] = c.cur[oldSlot]
			c.cur[oldSlot] = nil
		} else {
			needed = append(needed, slot)
			neededIDs = append(neededIDs, chunkID)
		}
		batch = append(batch, prediction{slot: slot, offset: offset})
	}

	// Step 3: fill any still-empty newly-assigned slots by scavenging a
	// leftover slab from cur. Exactly K non-empty slabs exist across cur and
	// nxt at all times, so a donor always exists.
	for _, slot := range needed {
		if c.nxt[slot] != nil {
			continue
		}
		donor := -1
		for i, s := range c.cur {
			if s != nil {
				donor = i
				break
			}
		}
		c.nxt[slot] = c.cur[donor]
		c.cur[donor] = nil
		allocate(c.nxt[slot])
	}

	populate(needed, neededIDs, c.nxt)

	c.cur, c.nxt = c.nxt, c.cur
	c.curID, c.nxtID = c.nxtID, c.curID
	c.predictionsMade = batch
	c.consumed = 1
	return c.cur[batch[0].slot], batch[0].offset
}
