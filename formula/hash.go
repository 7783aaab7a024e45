package formula

import "github.com/cespare/xxhash/v2"

// Node hashes are additive: each component is mixed on its own and the
// parts are summed. Cheap to combine, collisions are expected and are
// resolved by Equal.

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func hashKind(k Kind) uint64 { return mix(uint64(k) + 0x51) }

func hashInt(n int) uint64 { return mix(uint64(int64(n))) }

func hashBool(b bool) uint64 {
	if b {
		return mix(0xb5)
	}
	return mix(0xb4)
}

func hashName(name string) uint64 { return xxhash.Sum64String(name) }

// modalHash is hash(kind) + hash(modality) + hash(power) + hash(s5) + hash(sub).
func modalHash(k Kind, modality, power int, s5 bool, sub Formula) uint64 {
	return hashKind(k) + hashInt(modality) + hashInt(power) + hashBool(s5) + sub.Hash()
}
