package util

import (
	"fmt"
	"hash/fnv"

	"github.com/iti/rngstream"
)

// macPrefix is the locally-administered OUI used for all synthesized MACs.
const macPrefix = "02:00:00"

// SynthesizeMAC returns a locally-administered MAC address for the named
// device. Stream creation order is part of rngstream's package seed state,
// so the seed is pinned from a hash of the name first; a given device name
// always yields the same address and regenerated topologies stay
// reproducible.
func SynthesizeMAC(name string) string {
	h := fnv.New64a()
	h.Write([]byte(name))
	rngstream.SetRngStreamMasterSeed(h.Sum64())

	rng := rngstream.New("mac:" + name)
	mac := macPrefix
	for i := 0; i < 3; i++ {
		mac += fmt.Sprintf(":%02x", rng.RandInt(0, 255))
	}
	return mac
}
