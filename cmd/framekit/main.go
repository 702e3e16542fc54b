package main

import (
	"fmt"

	"github.com/bietkhonhungvandi212/framekit/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/framekit/internal/storage/index"
	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

func main() {
	// Simulate a tiny pool: pages 100..107 resident in frames 0..7.
	table := buffer.NewPageTable(4)
	replacer := buffer.NewLRUKReplacer(8, 2)
	for i := 0; i < 8; i++ {
		pid, frame := util.PageID(100+i), util.FrameID(i)
		table.Bind(pid, frame)
		replacer.RecordAccess(frame)
		replacer.SetEvictable(frame, true)
	}

	// Re-touch a few pages so their frames graduate to the hot list.
	for _, pid := range []util.PageID{100, 101, 102} {
		if frame, ok := table.Lookup(pid); ok {
			replacer.RecordAccess(frame)
		}
	}

	victim, ok := replacer.Evict()
	fmt.Printf("resident=%d evictable=%d victim=frame %d (found=%v)\n",
		table.Len(), replacer.Size(), victim, ok)

	ht := index.New[string, int](2)
	for i, word := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		ht.Insert(word, i)
	}
	v, _ := ht.Find("gamma")
	fmt.Printf("index: gamma=%d globalDepth=%d buckets=%d\n",
		v, ht.GetGlobalDepth(), ht.GetNumBuckets())
}
