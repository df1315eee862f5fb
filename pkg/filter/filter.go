// Package filter classifies auction listings by display name and selects the
// fixed-price listings worth surfacing.
package filter

import (
	"strings"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
)

// Name vocabularies for the three listing categories. Armor requires both an
// armor line and a piece type; equipment and shard matching are independent.
var (
	armorLines  = []string{"Crimson", "Aurora", "Terror", "Hollow", "Fervor"}
	armorPieces = []string{"Helmet", "Chestplate", "Leggings", "Boots"}
	equipment   = []string{"Molten Belt", "Molten Bracelet", "Molten Cloak", "Molten Necklace"}
)

// ShardMarker is the literal substring identifying attribute shards.
const ShardMarker = "Attribute Shard"

// IsArmor reports whether the name carries an armor line prefix and a piece
// type. Both checks are case-insensitive substring matches and must hold
// independently.
func IsArmor(name string) bool {
	return containsAny(name, armorLines) && containsAny(name, armorPieces)
}

// IsEquipment reports whether the name contains one of the equipment item
// names, case-insensitively.
func IsEquipment(name string) bool {
	return containsAny(name, equipment)
}

// IsShard reports whether the name contains the shard marker.
func IsShard(name string) bool {
	return strings.Contains(name, ShardMarker)
}

// Apply selects the BIN listings matching any category. Categories are
// matched independently and results are not deduplicated: a name satisfying
// several predicates appears once per matching category, armor first, then
// equipment, then shards.
func Apply(listings []auctions.Listing) []auctions.Listing {
	var armors, equips, shards []auctions.Listing
	for _, l := range listings {
		if l.Name == "" || !l.BIN {
			continue
		}
		if IsArmor(l.Name) {
			armors = append(armors, l)
		}
		if IsEquipment(l.Name) {
			equips = append(equips, l)
		}
		if IsShard(l.Name) {
			shards = append(shards, l)
		}
	}

	out := make([]auctions.Listing, 0, len(armors)+len(equips)+len(shards))
	out = append(out, armors...)
	out = append(out, equips...)
	return append(out, shards...)
}

func containsAny(name string, words []string) bool {
	lower := strings.ToLower(name)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
